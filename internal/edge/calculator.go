// Package edge evaluates bets against the model and the market
// consensus, producing expected value per unit staked and point edges.
package edge

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

// Calculator prices bets. Stake only scales the dollar-denominated
// field of the reports; all per-unit math is stake-independent.
type Calculator struct {
	cfg   rating.Config
	stake decimal.Decimal
}

// NewCalculator creates a calculator sharing the rating constants, so
// spread cover probabilities stay consistent with the predictor.
func NewCalculator(cfg rating.Config, stake decimal.Decimal) *Calculator {
	return &Calculator{cfg: cfg, stake: stake}
}

// Evaluate prices one user-specified bet against a prediction and its
// consensus entry (nil when the matchup never appeared in the odds
// feed). Fields the math cannot define stay nil: totals carry no model
// probability because the rating system has no scoring-total
// sub-model, and invalid odds drop only the fields derived from them.
func (c *Calculator) Evaluate(pred *models.Prediction, cons *models.ConsensusEntry, bet models.BetRequest) (*models.EdgeReport, error) {
	if bet.Type.RequiresLine() && bet.Line == nil {
		return nil, fmt.Errorf("bet type %s requires a line", bet.Type)
	}

	report := &models.EdgeReport{
		ID:       uuid.New(),
		HomeTeam: pred.HomeTeam,
		AwayTeam: pred.AwayTeam,
		Season:   pred.Season,
		Week:     pred.Week,
		Bet:      bet,
	}

	report.ModelProb = c.modelProb(pred, bet)
	report.PointEdge = c.pointEdge(pred, bet)

	implied := oddsmath.AmericanToImpliedProb(bet.Odds)
	report.MarketProb = &implied

	if report.ModelProb != nil {
		if ev, err := oddsmath.ExpectedValue(*report.ModelProb, bet.Odds); err == nil {
			report.ModelEV = &ev
		}
	}

	c.applyConsensus(report, cons, bet)
	c.applyStake(report)
	return report, nil
}

// modelProb derives the model's win probability for the specific bet.
// Spread cover probability re-applies the logistic curve to the rating
// diff shifted by line*spreadFactor: home covering -3.5 is a home win
// in a game shifted 3.5 points against it.
func (c *Calculator) modelProb(pred *models.Prediction, bet models.BetRequest) *float64 {
	var p float64
	switch bet.Type {
	case models.BetHomeMoneyline:
		p = pred.HomeWinProb
	case models.BetAwayMoneyline:
		p = pred.AwayWinProb
	case models.BetHomeSpread:
		p = oddsmath.ProbFromRatingDiff(pred.RatingDiff + *bet.Line*c.cfg.SpreadFactor)
	case models.BetAwaySpread:
		// An away line of +3.5 is the home side laying -3.5.
		homeLine := -*bet.Line
		p = 1 - oddsmath.ProbFromRatingDiff(pred.RatingDiff+homeLine*c.cfg.SpreadFactor)
	default:
		// Over/under: no model probability by design.
		return nil
	}
	return &p
}

// pointEdge compares the model spread to the user's line, in points in
// the bettor's favor. Undefined for moneylines and totals.
func (c *Calculator) pointEdge(pred *models.Prediction, bet models.BetRequest) *float64 {
	switch bet.Type {
	case models.BetHomeSpread:
		edge := *bet.Line - pred.ModelSpread
		return &edge
	case models.BetAwaySpread:
		edge := pred.ModelSpread + *bet.Line
		return &edge
	default:
		return nil
	}
}

// applyConsensus attaches the consensus fair probability, best price,
// and consensus-based EV for the side being bet. A consensus lookup
// miss leaves every consensus field nil.
func (c *Calculator) applyConsensus(report *models.EdgeReport, cons *models.ConsensusEntry, bet models.BetRequest) {
	if cons == nil {
		return
	}

	var fairProb *float64
	var book *string
	var price *int

	switch bet.Type {
	case models.BetHomeMoneyline:
		fairProb = cons.HomeMLFairProb
		if cons.HomeMoneyline != nil {
			book, price = &cons.HomeMoneyline.Book, &cons.HomeMoneyline.Price
		}
	case models.BetAwayMoneyline:
		fairProb = cons.AwayMLFairProb
		if cons.AwayMoneyline != nil {
			book, price = &cons.AwayMoneyline.Book, &cons.AwayMoneyline.Price
		}
	case models.BetHomeSpread:
		if sc, ok := cons.Spreads[*bet.Line]; ok {
			fairProb = sc.HomeFairProb
			if sc.Home != nil {
				book, price = &sc.Home.Book, &sc.Home.Price
			}
		}
	case models.BetAwaySpread:
		if sc, ok := cons.Spreads[-*bet.Line]; ok {
			fairProb = sc.AwayFairProb
			if sc.Away != nil {
				book, price = &sc.Away.Book, &sc.Away.Price
			}
		}
	case models.BetOver:
		if tc, ok := cons.Totals[*bet.Line]; ok {
			fairProb = tc.OverFairProb
			if tc.Over != nil {
				book, price = &tc.Over.Book, &tc.Over.Price
			}
		}
	case models.BetUnder:
		if tc, ok := cons.Totals[*bet.Line]; ok {
			fairProb = tc.UnderFairProb
			if tc.Under != nil {
				book, price = &tc.Under.Book, &tc.Under.Price
			}
		}
	}

	report.ConsensusProb = fairProb
	report.ConsensusBook = book
	report.BestPrice = price

	if fairProb != nil {
		if ev, err := oddsmath.ExpectedValue(*fairProb, bet.Odds); err == nil {
			report.ConsensusEV = &ev
		}
	}
}

// applyStake converts the strongest per-unit EV into a dollar figure
// at the configured stake.
func (c *Calculator) applyStake(report *models.EdgeReport) {
	ev, ok := report.BestEV()
	if !ok || c.stake.IsZero() {
		return
	}
	dollars := c.stake.Mul(decimal.NewFromFloat(ev)).Round(2)
	report.StakeEV = &dollars
}
