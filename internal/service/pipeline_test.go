package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

type stubOddsFetcher struct {
	events []models.OddsEvent
	err    error
}

func (s *stubOddsFetcher) FetchEvents(ctx context.Context) ([]models.OddsEvent, error) {
	return s.events, s.err
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testPipelineConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	gamesPath := writeFixture(t, dir, "games.csv",
		"season,week,date,home_team,away_team,home_score,away_score\n"+
			"2024,1,2024-09-08,KC,BAL,27,20\n"+
			"2024,1,2024-09-08,PHI,GB,34,29\n"+
			"2024,2,2024-09-15,BAL,PHI,28,24\n"+
			"2024,2,2024-09-15,GB,KC,17,31\n")

	upcomingPath := writeFixture(t, dir, "upcoming.csv",
		"season,week,date,home_team,away_team\n"+
			"2024,3,2024-09-22,KC,PHI\n"+
			"2024,3,2024-09-22,BAL,GB\n")

	cfg, err := config.LoadWithDefaults(filepath.Join(dir, "no-config.yaml"))
	require.NoError(t, err)
	cfg.Data.GamesPath = gamesPath
	cfg.Data.UpcomingPath = upcomingPath
	cfg.Data.MarketPath = ""
	cfg.Betting.MinEV = -1
	cfg.Betting.MaxResults = 0
	return cfg
}

func testOddsEvents() []models.OddsEvent {
	point := 2.5
	awayPoint := -2.5
	total := 46.5
	return []models.OddsEvent{
		{
			ID:       "evt1",
			HomeTeam: "Kansas City Chiefs",
			AwayTeam: "Philadelphia Eagles",
			Bookmakers: []models.Bookmaker{
				{
					Key: "draftkings",
					Markets: []models.FeedMarket{
						{
							Key: models.FeedMarketMoneyline,
							Outcomes: []models.FeedOutcome{
								{Name: "Kansas City Chiefs", Price: -150},
								{Name: "Philadelphia Eagles", Price: 130},
							},
						},
						{
							Key: models.FeedMarketSpreads,
							Outcomes: []models.FeedOutcome{
								{Name: "Kansas City Chiefs", Price: -110, Point: &awayPoint},
								{Name: "Philadelphia Eagles", Price: -110, Point: &point},
							},
						},
						{
							Key: models.FeedMarketTotals,
							Outcomes: []models.FeedOutcome{
								{Name: models.FeedOutcomeOver, Price: -105, Point: &total},
								{Name: models.FeedOutcomeUnder, Price: -115, Point: &total},
							},
						},
					},
				},
			},
		},
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestPipelineBuildRatings(t *testing.T) {
	cfg := testPipelineConfig(t)
	p := NewPipeline(cfg, nil, quietLogger())

	result, err := p.BuildRatings()
	require.NoError(t, err)

	assert.Len(t, result.State, 4)
	assert.Len(t, result.History, 4)
	require.Len(t, result.Standings, 4)

	// Undefeated KC should top the table.
	assert.Equal(t, "KC", result.Standings[0].Team)
	assert.Equal(t, 1, result.Standings[0].Rank)
}

func TestPipelineBuildRatingsMissingFile(t *testing.T) {
	cfg := testPipelineConfig(t)
	cfg.Data.GamesPath = "/nonexistent/games.csv"
	p := NewPipeline(cfg, nil, quietLogger())

	_, err := p.BuildRatings()
	assert.Error(t, err)
}

func TestPipelinePredictUpcoming(t *testing.T) {
	cfg := testPipelineConfig(t)
	p := NewPipeline(cfg, nil, quietLogger())

	result, err := p.BuildRatings()
	require.NoError(t, err)

	predictions, err := p.PredictUpcoming(result.State)
	require.NoError(t, err)
	require.Len(t, predictions, 2)

	kcPhi := predictions[0]
	assert.Equal(t, "KC", kcPhi.HomeTeam)
	assert.Greater(t, kcPhi.HomeWinProb, 0.5)
	assert.Less(t, kcPhi.ModelSpread, 0.0)
}

func TestPipelineScanEdges(t *testing.T) {
	cfg := testPipelineConfig(t)
	odds := &stubOddsFetcher{events: testOddsEvents()}
	p := NewPipeline(cfg, odds, quietLogger())

	reports, err := p.ScanEdges(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, reports)

	// All reports come from the one matchup present in the feed.
	for _, r := range reports {
		assert.Equal(t, "KC", r.HomeTeam)
		assert.Equal(t, "PHI", r.AwayTeam)
		assert.NotNil(t, r.ConsensusBook)
	}
}

func TestPipelineScanEdgesNoFeed(t *testing.T) {
	cfg := testPipelineConfig(t)
	p := NewPipeline(cfg, nil, quietLogger())

	_, err := p.ScanEdges(context.Background())
	assert.Error(t, err)
}

func TestPipelineEvaluateBet(t *testing.T) {
	cfg := testPipelineConfig(t)
	odds := &stubOddsFetcher{events: testOddsEvents()}
	p := NewPipeline(cfg, odds, quietLogger())

	report, err := p.EvaluateBet(context.Background(), "KC", "PHI", models.BetRequest{
		Type: models.BetHomeMoneyline,
		Odds: -150,
	})
	require.NoError(t, err)
	require.NotNil(t, report.ModelProb)
	require.NotNil(t, report.ModelEV)
	require.NotNil(t, report.StakeEV)
}

func TestPipelineEvaluateBetUnknownMatchup(t *testing.T) {
	cfg := testPipelineConfig(t)
	p := NewPipeline(cfg, nil, quietLogger())

	_, err := p.EvaluateBet(context.Background(), "DAL", "NYG", models.BetRequest{
		Type: models.BetHomeMoneyline,
		Odds: 100,
	})
	assert.Error(t, err)
}
