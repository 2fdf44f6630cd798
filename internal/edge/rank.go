package edge

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// rankWorkers bounds the fan-out across matchups. Evaluation reads a
// frozen ratings snapshot, so matchups are independent.
const rankWorkers = 4

// RankOptions controls opportunity generation.
type RankOptions struct {
	// MinEV drops opportunities whose best EV falls below this floor.
	MinEV float64
	// Limit truncates the ranked list; zero means unlimited.
	Limit int
}

// RankOpportunities generates candidate bets from the consensus best
// prices for every predicted matchup, evaluates each, and returns them
// sorted by expected value descending. Matchups in the feed without a
// prediction are ignored; predictions with no consensus entry produce
// no opportunities.
func (c *Calculator) RankOpportunities(predictions []models.Prediction, consensus models.ConsensusMap, opts RankOptions, logger *logrus.Logger) []models.EdgeReport {
	if logger == nil {
		logger = logrus.New()
	}

	jobs := make(chan *models.Prediction)
	results := make(chan []models.EdgeReport)

	var wg sync.WaitGroup
	for w := 0; w < rankWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pred := range jobs {
				cons := consensus[models.MatchupKey{HomeTeam: pred.HomeTeam, AwayTeam: pred.AwayTeam}]
				if cons == nil {
					continue
				}
				results <- c.evaluateMatchup(pred, cons)
			}
		}()
	}

	go func() {
		for i := range predictions {
			jobs <- &predictions[i]
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var reports []models.EdgeReport
	for batch := range results {
		reports = append(reports, batch...)
	}

	reports = filterByEV(reports, opts.MinEV)
	sortByEV(reports)
	if opts.Limit > 0 && len(reports) > opts.Limit {
		reports = reports[:opts.Limit]
	}

	logger.WithField("opportunities", len(reports)).Info("Edge ranking complete")
	return reports
}

// evaluateMatchup prices every side the consensus has a best quote
// for, using that best price as the offered odds.
func (c *Calculator) evaluateMatchup(pred *models.Prediction, cons *models.ConsensusEntry) []models.EdgeReport {
	var bets []models.BetRequest

	if cons.HomeMoneyline != nil {
		bets = append(bets, models.BetRequest{Type: models.BetHomeMoneyline, Odds: cons.HomeMoneyline.Price})
	}
	if cons.AwayMoneyline != nil {
		bets = append(bets, models.BetRequest{Type: models.BetAwayMoneyline, Odds: cons.AwayMoneyline.Price})
	}
	for point, sc := range cons.Spreads {
		if sc.Home != nil {
			line := point
			bets = append(bets, models.BetRequest{Type: models.BetHomeSpread, Odds: sc.Home.Price, Line: &line})
		}
		if sc.Away != nil {
			line := -point
			bets = append(bets, models.BetRequest{Type: models.BetAwaySpread, Odds: sc.Away.Price, Line: &line})
		}
	}
	for point, tc := range cons.Totals {
		if tc.Over != nil {
			line := point
			bets = append(bets, models.BetRequest{Type: models.BetOver, Odds: tc.Over.Price, Line: &line})
		}
		if tc.Under != nil {
			line := point
			bets = append(bets, models.BetRequest{Type: models.BetUnder, Odds: tc.Under.Price, Line: &line})
		}
	}

	reports := make([]models.EdgeReport, 0, len(bets))
	for _, bet := range bets {
		report, err := c.Evaluate(pred, cons, bet)
		if err != nil {
			continue
		}
		reports = append(reports, *report)
	}
	return reports
}

func filterByEV(reports []models.EdgeReport, minEV float64) []models.EdgeReport {
	kept := reports[:0]
	for _, r := range reports {
		if ev, ok := r.BestEV(); ok && ev >= minEV {
			kept = append(kept, r)
		}
	}
	return kept
}

// sortByEV orders by best EV descending; matchup and bet type break
// ties so repeated runs rank identically.
func sortByEV(reports []models.EdgeReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		evI, _ := reports[i].BestEV()
		evJ, _ := reports[j].BestEV()
		if evI != evJ {
			return evI > evJ
		}
		if reports[i].HomeTeam != reports[j].HomeTeam {
			return reports[i].HomeTeam < reports[j].HomeTeam
		}
		return reports[i].Bet.Type < reports[j].Bet.Type
	})
}
