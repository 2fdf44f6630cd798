// Package rating implements the incremental Elo engine: chronological
// replay of a game log with margin-of-victory dampening, home-field
// adjustment, and season-boundary regression to the mean.
package rating

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
)

// Engine replays historical games into team ratings. It assumes its
// input was validated upstream (the CSV boundary drops malformed rows)
// and does not re-validate.
type Engine struct {
	cfg    Config
	logger *logrus.Logger
}

// NewEngine creates a rating engine.
func NewEngine(cfg Config, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{cfg: cfg, logger: logger}
}

// Config returns the engine's rating constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// Result is the output of one ingest run: the presentation-ready
// standings sorted by rating descending, the append-only history log,
// and the live state map the predictor reads from.
type Result struct {
	Standings []models.TeamStanding
	History   []models.RatingHistoryEntry
	State     State
}

// Ingest replays games in chronological order and returns the final
// ratings. The replay is order-sensitive and not commutative, so the
// input is re-sorted by (date, season, week, home, away) before
// processing; the same input always produces the same output.
func (e *Engine) Ingest(games []models.Game) *Result {
	ordered := SortGames(games)

	state := NewState()
	history := make([]models.RatingHistoryEntry, 0, len(ordered))

	for i := range ordered {
		history = append(history, e.processGame(state, &ordered[i]))
	}

	e.logger.WithFields(logrus.Fields{
		"games": len(ordered),
		"teams": len(state),
	}).Info("Rating ingest complete")

	return &Result{
		Standings: Standings(state),
		History:   history,
		State:     state,
	}
}

// processGame applies one game to the state and returns its audit
// entry. Deltas are zero-sum: home gains exactly what away loses.
func (e *Engine) processGame(state State, game *models.Game) models.RatingHistoryEntry {
	home := state.Ensure(game.HomeTeam, e.cfg, game.Season)
	away := state.Ensure(game.AwayTeam, e.cfg, game.Season)

	// Regression happens before the game's ratings are read, and
	// independently per team: with sparse data the two sides may cross
	// season boundaries on different games.
	RegressForSeason(home, game.Season, e.cfg)
	RegressForSeason(away, game.Season, e.cfg)

	advantage := e.cfg.advantage(game.Neutral)
	diff := home.Rating + advantage - away.Rating
	expected := oddsmath.ProbFromRatingDiff(diff)
	actual := game.Outcome()
	margin := game.Margin()

	mult := 1.0
	if e.cfg.MovDampen {
		mult = e.movMultiplier(margin, diff)
	}
	delta := e.cfg.KFactor * mult * (actual - expected)

	entry := models.RatingHistoryEntry{
		ID:            uuid.New(),
		GameID:        game.GameID,
		Date:          game.Date,
		Season:        game.Season,
		Week:          game.Week,
		HomeTeam:      game.HomeTeam,
		AwayTeam:      game.AwayTeam,
		PreHome:       home.Rating,
		PreAway:       away.Rating,
		HomeAdvantage: advantage,
		RatingDiff:    diff,
		ExpectedHome:  expected,
		Actual:        actual,
		Margin:        margin,
		MovMultiplier: mult,
		HomeDelta:     delta,
	}

	home.Rating += delta
	away.Rating -= delta
	home.GamesPlayed++
	away.GamesPlayed++
	if game.Date != nil {
		d := *game.Date
		home.LastGameDate = &d
		away.LastGameDate = &d
	}

	entry.PostHome = home.Rating
	entry.PostAway = away.Rating
	return entry
}

// movMultiplier dampens the update by how lopsided the score was,
// attenuated by the pre-game rating gap: |margin|^exp / (base +
// slope*|diff|). A zero margin yields zero, so ties move ratings only
// through the (actual - expected) term, which is itself zero at even
// expectations.
func (e *Engine) movMultiplier(margin int, diff float64) float64 {
	m := math.Abs(float64(margin))
	return math.Pow(m, e.cfg.MovExponent) / (e.cfg.MovBase + e.cfg.MovSlope*math.Abs(diff))
}

// SortGames returns a copy of games in deterministic replay order:
// date, then season, then week, then home and away codes. Games
// without a date sort before dated ones.
func SortGames(games []models.Game) []models.Game {
	ordered := make([]models.Game, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := &ordered[i], &ordered[j]
		at, bt := dateOrZero(a.Date), dateOrZero(b.Date)
		if !at.Equal(bt) {
			return at.Before(bt)
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.HomeTeam != b.HomeTeam {
			return a.HomeTeam < b.HomeTeam
		}
		return a.AwayTeam < b.AwayTeam
	})
	return ordered
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// Standings flattens a state map into the ratings table, sorted by
// rating descending with team code breaking exact ties.
func Standings(state State) []models.TeamStanding {
	rows := make([]models.TeamStanding, 0, len(state))
	for _, tr := range state {
		rows = append(rows, models.TeamStanding{
			Team:        tr.Team,
			Rating:      tr.Rating,
			GamesPlayed: tr.GamesPlayed,
			Season:      tr.Season,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return strings.Compare(rows[i].Team, rows[j].Team) < 0
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
