package edge

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

func mlConsensus(home, away string, homePrice, awayPrice int) *models.ConsensusEntry {
	entry := &models.ConsensusEntry{
		HomeTeam:      home,
		AwayTeam:      away,
		HomeMoneyline: &models.MoneylineQuote{Price: homePrice, Book: "BookA"},
		AwayMoneyline: &models.MoneylineQuote{Price: awayPrice, Book: "BookB"},
	}
	h, a, err := oddsmath.RemoveVig(
		oddsmath.AmericanToImpliedProb(homePrice),
		oddsmath.AmericanToImpliedProb(awayPrice),
	)
	if err == nil {
		entry.HomeMLFairProb = &h
		entry.AwayMLFairProb = &a
	}
	return entry
}

func TestRankOpportunities(t *testing.T) {
	calc := NewCalculator(rating.DefaultConfig(), decimal.NewFromInt(50))

	// Model strongly favors home; market prices it as a coin flip, so
	// the home moneyline must rank first.
	diff := 200.0
	p := oddsmath.ProbFromRatingDiff(diff)
	predictions := []models.Prediction{{
		Season: 2024, Week: 5,
		HomeTeam: "GB", AwayTeam: "CHI",
		RatingDiff: diff, HomeWinProb: p, AwayWinProb: 1 - p,
		ModelSpread: -diff / 25,
	}}

	consensus := models.ConsensusMap{
		{HomeTeam: "GB", AwayTeam: "CHI"}: mlConsensus("GB", "CHI", -105, -105),
		// Feed-only matchup with no prediction: ignored.
		{HomeTeam: "DAL", AwayTeam: "PHI"}: mlConsensus("DAL", "PHI", -110, -110),
	}

	reports := calc.RankOpportunities(predictions, consensus, RankOptions{MinEV: -1}, nil)
	require.NotEmpty(t, reports)

	assert.Equal(t, models.BetHomeMoneyline, reports[0].Bet.Type)
	best, ok := reports[0].BestEV()
	require.True(t, ok)
	assert.Greater(t, best, 0.0)

	// Ranking is non-increasing in EV.
	for i := 1; i < len(reports); i++ {
		prev, _ := reports[i-1].BestEV()
		cur, _ := reports[i].BestEV()
		assert.GreaterOrEqual(t, prev, cur)
	}

	for _, r := range reports {
		assert.Equal(t, "GB", r.HomeTeam, "matchups without predictions must be ignored")
	}
}

func TestRankOpportunitiesEVFloorAndLimit(t *testing.T) {
	calc := NewCalculator(rating.DefaultConfig(), decimal.Zero)

	predictions := []models.Prediction{{
		Season: 2024, Week: 5,
		HomeTeam: "GB", AwayTeam: "CHI",
		RatingDiff: 0, HomeWinProb: 0.5, AwayWinProb: 0.5,
	}}
	consensus := models.ConsensusMap{
		{HomeTeam: "GB", AwayTeam: "CHI"}: mlConsensus("GB", "CHI", -110, -110),
	}

	// Both sides are -EV at -110 for a 50% model; a zero floor keeps
	// nothing.
	reports := calc.RankOpportunities(predictions, consensus, RankOptions{MinEV: 0}, nil)
	assert.Empty(t, reports)

	reports = calc.RankOpportunities(predictions, consensus, RankOptions{MinEV: -1, Limit: 1}, nil)
	assert.Len(t, reports, 1)
}

func TestRankOpportunitiesDeterministic(t *testing.T) {
	calc := NewCalculator(rating.DefaultConfig(), decimal.Zero)

	var predictions []models.Prediction
	consensus := models.ConsensusMap{}
	matchups := [][2]string{{"GB", "CHI"}, {"DAL", "PHI"}, {"KC", "DEN"}, {"BUF", "MIA"}}
	for _, m := range matchups {
		predictions = append(predictions, models.Prediction{
			Season: 2024, Week: 5,
			HomeTeam: m[0], AwayTeam: m[1],
			RatingDiff: 0, HomeWinProb: 0.5, AwayWinProb: 0.5,
		})
		consensus[models.MatchupKey{HomeTeam: m[0], AwayTeam: m[1]}] = mlConsensus(m[0], m[1], -110, -110)
	}

	first := calc.RankOpportunities(predictions, consensus, RankOptions{MinEV: -1}, nil)
	second := calc.RankOpportunities(predictions, consensus, RankOptions{MinEV: -1}, nil)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].HomeTeam, second[i].HomeTeam, "worker fan-out must not change ranking")
		assert.Equal(t, first[i].Bet.Type, second[i].Bet.Type)
	}
}
