package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

func feedEvent(bookmakers ...models.Bookmaker) models.OddsEvent {
	return models.OddsEvent{
		ID:         "evt1",
		SportKey:   "americanfootball_nfl",
		HomeTeam:   "Green Bay Packers",
		AwayTeam:   "Chicago Bears",
		Bookmakers: bookmakers,
	}
}

func mlBook(title string, homePrice, awayPrice int) models.Bookmaker {
	return models.Bookmaker{
		Title: title,
		Markets: []models.FeedMarket{{
			Key: models.FeedMarketMoneyline,
			Outcomes: []models.FeedOutcome{
				{Name: "Green Bay Packers", Price: homePrice},
				{Name: "Chicago Bears", Price: awayPrice},
			},
		}},
	}
}

func TestBuildConsensusPicksBestDecimalPrice(t *testing.T) {
	// Three books quote the same side at -105, -110, +100; the
	// consensus must carry +100 and attribute the right book.
	events := []models.OddsEvent{feedEvent(
		mlBook("BookA", -105, -115),
		mlBook("BookB", -110, -110),
		mlBook("BookC", 100, -120),
	)}

	consensus := BuildConsensus(events, nil)
	entry := consensus[models.MatchupKey{HomeTeam: "GB", AwayTeam: "CHI"}]
	require.NotNil(t, entry)

	require.NotNil(t, entry.HomeMoneyline)
	assert.Equal(t, 100, entry.HomeMoneyline.Price)
	assert.Equal(t, "BookC", entry.HomeMoneyline.Book)

	// Best away price is -110 from BookB.
	require.NotNil(t, entry.AwayMoneyline)
	assert.Equal(t, -110, entry.AwayMoneyline.Price)
	assert.Equal(t, "BookB", entry.AwayMoneyline.Book)

	// De-vigged pair sums to one.
	require.NotNil(t, entry.HomeMLFairProb)
	require.NotNil(t, entry.AwayMLFairProb)
	assert.InDelta(t, 1.0, *entry.HomeMLFairProb+*entry.AwayMLFairProb, 1e-12)
}

func TestBuildConsensusNormalizesTeamNames(t *testing.T) {
	events := []models.OddsEvent{{
		HomeTeam: "Oakland Raiders",
		AwayTeam: "San Diego Chargers",
	}}

	consensus := BuildConsensus(events, nil)
	_, ok := consensus[models.MatchupKey{HomeTeam: "LV", AwayTeam: "LAC"}]
	assert.True(t, ok, "legacy names must map to canonical codes")
}

func TestBuildConsensusSpreadPointsTrackedIndependently(t *testing.T) {
	point35, point30 := -3.5, -3.0
	awayPoint35, awayPoint30 := 3.5, 3.0

	events := []models.OddsEvent{feedEvent(
		models.Bookmaker{
			Title: "BookA",
			Markets: []models.FeedMarket{{
				Key: models.FeedMarketSpreads,
				Outcomes: []models.FeedOutcome{
					{Name: "Green Bay Packers", Price: -110, Point: &point35},
					{Name: "Chicago Bears", Price: -110, Point: &awayPoint35},
				},
			}},
		},
		models.Bookmaker{
			Title: "BookB",
			Markets: []models.FeedMarket{{
				Key: models.FeedMarketSpreads,
				Outcomes: []models.FeedOutcome{
					{Name: "Green Bay Packers", Price: -120, Point: &point30},
					{Name: "Chicago Bears", Price: 100, Point: &awayPoint30},
				},
			}},
		},
	)}

	entry := BuildConsensus(events, nil)[models.MatchupKey{HomeTeam: "GB", AwayTeam: "CHI"}]
	require.NotNil(t, entry)

	// Two distinct point values, never merged.
	require.Len(t, entry.Spreads, 2)

	at35 := entry.Spreads[-3.5]
	require.NotNil(t, at35)
	require.NotNil(t, at35.Home)
	require.NotNil(t, at35.Away)
	assert.Equal(t, 3.5, at35.Away.Point)
	require.NotNil(t, at35.HomeFairProb)
	assert.InDelta(t, 0.5, *at35.HomeFairProb, 1e-12)

	at30 := entry.Spreads[-3.0]
	require.NotNil(t, at30)
	assert.Equal(t, "BookB", at30.Home.Book)
	require.NotNil(t, at30.HomeFairProb)
	assert.Greater(t, *at30.HomeFairProb, 0.5)
}

func TestBuildConsensusTotals(t *testing.T) {
	total := 44.5
	events := []models.OddsEvent{feedEvent(
		models.Bookmaker{
			Title: "BookA",
			Markets: []models.FeedMarket{{
				Key: models.FeedMarketTotals,
				Outcomes: []models.FeedOutcome{
					{Name: "Over", Price: -115, Point: &total},
					{Name: "Under", Price: -105, Point: &total},
				},
			}},
		},
		models.Bookmaker{
			Title: "BookB",
			Markets: []models.FeedMarket{{
				Key: models.FeedMarketTotals,
				Outcomes: []models.FeedOutcome{
					{Name: "Over", Price: -105, Point: &total},
					{Name: "Under", Price: -115, Point: &total},
				},
			}},
		},
	)}

	entry := BuildConsensus(events, nil)[models.MatchupKey{HomeTeam: "GB", AwayTeam: "CHI"}]
	require.NotNil(t, entry)

	tc := entry.Totals[44.5]
	require.NotNil(t, tc)
	assert.Equal(t, "BookB", tc.Over.Book)
	assert.Equal(t, "BookA", tc.Under.Book)
	require.NotNil(t, tc.OverFairProb)
	assert.InDelta(t, 0.5, *tc.OverFairProb, 1e-12)
}

func TestBuildConsensusOneSidedMarketHasNoFairProb(t *testing.T) {
	point := -7.0
	events := []models.OddsEvent{feedEvent(models.Bookmaker{
		Title: "BookA",
		Markets: []models.FeedMarket{{
			Key: models.FeedMarketSpreads,
			Outcomes: []models.FeedOutcome{
				{Name: "Green Bay Packers", Price: -110, Point: &point},
			},
		}},
	})}

	entry := BuildConsensus(events, nil)[models.MatchupKey{HomeTeam: "GB", AwayTeam: "CHI"}]
	sc := entry.Spreads[-7.0]
	require.NotNil(t, sc)
	assert.Nil(t, sc.Away)
	assert.Nil(t, sc.HomeFairProb)
}
