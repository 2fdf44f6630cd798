package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction is the model's forecast for one upcoming game. Fields up
// to AwayFairMoneyline are filled by the predictor; the market fields
// stay nil until the prediction is joined against market lines, and a
// join miss leaves them nil rather than zero.
//
// Sign convention: ModelSpread is home-team-centric, so a NEGATIVE
// spread favors the home team (home -3.5 means the model expects the
// home side to win by 3.5).
type Prediction struct {
	ID       uuid.UUID  `json:"id"`
	GameID   *string    `json:"game_id,omitempty"`
	Season   int        `json:"season"`
	Week     int        `json:"week"`
	Date     *time.Time `json:"date,omitempty"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Neutral  bool       `json:"neutral_site"`

	RatingDiff        float64 `json:"rating_diff"` // home advantage included
	HomeWinProb       float64 `json:"home_win_prob"`
	AwayWinProb       float64 `json:"away_win_prob"`
	ModelSpread       float64 `json:"model_spread"`
	HomeFairMoneyline *int    `json:"home_fair_moneyline,omitempty"`
	AwayFairMoneyline *int    `json:"away_fair_moneyline,omitempty"`

	// Market fields, populated by the market merge when a matching
	// line exists.
	Book           *string  `json:"book,omitempty"`
	MarketSpread   *float64 `json:"market_spread,omitempty"`
	MarketTotal    *float64 `json:"market_total,omitempty"`
	HomeMoneyline  *int     `json:"home_moneyline,omitempty"`
	AwayMoneyline  *int     `json:"away_moneyline,omitempty"`
	HomeSpreadEdge *float64 `json:"home_spread_edge,omitempty"` // market - model, points
	MoneylineEdge  *float64 `json:"moneyline_edge,omitempty"`   // model prob - implied prob
}

// FavoredTeam returns the code of the side the model favors, or the
// empty string for a dead-even forecast.
func (p *Prediction) FavoredTeam() string {
	switch {
	case p.HomeWinProb > 0.5:
		return p.HomeTeam
	case p.HomeWinProb < 0.5:
		return p.AwayTeam
	default:
		return ""
	}
}
