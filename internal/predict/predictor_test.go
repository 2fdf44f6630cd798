package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

func testConfig() rating.Config {
	cfg := rating.DefaultConfig()
	cfg.HomeAdvantage = 55
	return cfg
}

func upcoming(season, week int, home, away string) models.UpcomingGame {
	return models.UpcomingGame{Season: season, Week: week, HomeTeam: home, AwayTeam: away}
}

func TestPredictKnownState(t *testing.T) {
	cfg := testConfig()
	state := rating.State{
		"AAA": &models.TeamRating{Team: "AAA", Rating: 1600, Season: 2024},
		"BBB": &models.TeamRating{Team: "BBB", Rating: 1500, Season: 2024},
	}

	preds := NewPredictor(cfg, nil).Predict([]models.UpcomingGame{
		upcoming(2024, 5, "AAA", "BBB"),
	}, state)

	require.Len(t, preds, 1)
	p := preds[0]

	assert.InDelta(t, 155, p.RatingDiff, 1e-12)
	assert.InDelta(t, 1-p.HomeWinProb, p.AwayWinProb, 1e-12)
	assert.Greater(t, p.HomeWinProb, 0.5)

	// Home-centric spread: negative favors home.
	assert.InDelta(t, -155.0/25.0, p.ModelSpread, 1e-12)
	assert.Less(t, p.ModelSpread, 0.0)

	require.NotNil(t, p.HomeFairMoneyline)
	require.NotNil(t, p.AwayFairMoneyline)
	assert.Negative(t, *p.HomeFairMoneyline)
	assert.Positive(t, *p.AwayFairMoneyline)
}

func TestPredictSeedsUnseenTeams(t *testing.T) {
	cfg := testConfig()
	state := rating.State{
		"AAA": &models.TeamRating{Team: "AAA", Rating: 1600, Season: 2024},
	}

	// Expansion-like case: XXX has never played.
	preds := NewPredictor(cfg, nil).Predict([]models.UpcomingGame{
		upcoming(2024, 5, "XXX", "AAA"),
	}, state)

	require.Len(t, preds, 1)
	assert.InDelta(t, 1500+55-1600, preds[0].RatingDiff, 1e-12)

	// State was not mutated by prediction.
	_, seeded := state["XXX"]
	assert.False(t, seeded)
}

func TestPredictRegressesAcrossSeasonBoundary(t *testing.T) {
	cfg := testConfig()
	state := rating.State{
		"AAA": &models.TeamRating{Team: "AAA", Rating: 1700, Season: 2023},
		"BBB": &models.TeamRating{Team: "BBB", Rating: 1500, Season: 2023},
	}

	preds := NewPredictor(cfg, nil).Predict([]models.UpcomingGame{
		upcoming(2024, 1, "AAA", "BBB"),
	}, state)

	// AAA enters 2024 regressed 20% toward base: 1500 + 200*0.8 = 1660.
	require.Len(t, preds, 1)
	assert.InDelta(t, 1660+55-1500, preds[0].RatingDiff, 1e-9)

	// Read-only: the stored state keeps its 2023 value.
	assert.InDelta(t, 1700, state["AAA"].Rating, 1e-12)
	assert.Equal(t, 2023, state["AAA"].Season)
}

func TestPredictNeutralSiteDropsAdvantage(t *testing.T) {
	cfg := testConfig()
	state := rating.State{
		"AAA": &models.TeamRating{Team: "AAA", Rating: 1500, Season: 2024},
		"BBB": &models.TeamRating{Team: "BBB", Rating: 1500, Season: 2024},
	}

	g := upcoming(2024, 1, "AAA", "BBB")
	g.Neutral = true
	preds := NewPredictor(cfg, nil).Predict([]models.UpcomingGame{g}, state)

	require.Len(t, preds, 1)
	assert.InDelta(t, 0, preds[0].RatingDiff, 1e-12)
	assert.InDelta(t, 0.5, preds[0].HomeWinProb, 1e-12)

	// An exactly even forecast has no fair moneyline on either side
	// that differs: both price at -100.
	require.NotNil(t, preds[0].HomeFairMoneyline)
	assert.Equal(t, -100, *preds[0].HomeFairMoneyline)
}
