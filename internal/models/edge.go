package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetType identifies which side of which market a bet is on.
type BetType string

const (
	BetHomeMoneyline BetType = "home_ml"
	BetAwayMoneyline BetType = "away_ml"
	BetHomeSpread    BetType = "home_spread"
	BetAwaySpread    BetType = "away_spread"
	BetOver          BetType = "over"
	BetUnder         BetType = "under"
)

// RequiresLine reports whether the bet type needs a point value.
func (t BetType) RequiresLine() bool {
	switch t {
	case BetHomeSpread, BetAwaySpread, BetOver, BetUnder:
		return true
	default:
		return false
	}
}

// BetRequest is a user-specified bet to evaluate: the side, the odds
// actually offered to the user, and the line for spread/total bets.
// Spread lines are quoted for the side being bet (home -3.5, away
// +3.5).
type BetRequest struct {
	Type BetType  `json:"type" validate:"required,oneof=home_ml away_ml home_spread away_spread over under"`
	Odds int      `json:"odds" validate:"required"`
	Line *float64 `json:"line,omitempty"`
}

// EdgeReport is the evaluation of one bet against the model and the
// market consensus. Any field the math could not define is nil: a bad
// odds entry poisons only that field, never the batch (totals carry no
// model probability at all, the rating system has no scoring-total
// sub-model).
type EdgeReport struct {
	ID       uuid.UUID  `json:"id"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Season   int        `json:"season"`
	Week     int        `json:"week"`
	Bet      BetRequest `json:"bet"`

	ModelProb     *float64 `json:"model_prob,omitempty"`
	MarketProb    *float64 `json:"market_prob,omitempty"` // implied by the user's odds
	ConsensusProb *float64 `json:"consensus_prob,omitempty"`
	ConsensusBook *string  `json:"consensus_book,omitempty"`
	BestPrice     *int     `json:"best_price,omitempty"`

	ModelEV     *float64 `json:"model_ev,omitempty"`     // per $1 risked
	ConsensusEV *float64 `json:"consensus_ev,omitempty"` // per $1 risked
	PointEdge   *float64 `json:"point_edge,omitempty"`   // model spread vs user's line

	// Dollar expectation at the configured stake, derived from the
	// strongest probability estimate available for this bet.
	StakeEV *decimal.Decimal `json:"stake_ev,omitempty"`
}

// BestEV returns the strongest expected value available for ranking:
// the model EV when the model prices this bet, otherwise the consensus
// EV. The second return is false when neither is defined.
func (r *EdgeReport) BestEV() (float64, bool) {
	if r.ModelEV != nil {
		return *r.ModelEV, true
	}
	if r.ConsensusEV != nil {
		return *r.ConsensusEV, true
	}
	return 0, false
}
