package rating

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// State is the mutable per-team rating map owned by a single ingest
// run. Callers must not share one State across concurrent ingests;
// predictions read a frozen State without mutating it.
type State map[string]*models.TeamRating

// NewState returns an empty rating state.
func NewState() State {
	return make(State)
}

// Ensure returns the state for a team, materializing it at the base
// rating on first sight.
func (s State) Ensure(team string, cfg Config, season int) *models.TeamRating {
	if tr, ok := s[team]; ok {
		return tr
	}
	tr := &models.TeamRating{
		Team:   team,
		Rating: cfg.BaseRating,
		Season: season,
	}
	s[team] = tr
	return tr
}

// RegressForSeason pulls a team's rating toward base when it crosses
// into a new season. Applied at most once per team per distinct season
// value: a second game in the same season is a no-op.
func RegressForSeason(tr *models.TeamRating, season int, cfg Config) {
	if season <= tr.Season {
		return
	}
	tr.Rating = cfg.BaseRating + (tr.Rating-cfg.BaseRating)*(1-cfg.RegressionFactor)
	tr.Season = season
}

// EffectiveRating computes the rating a team would carry into a game
// of the given season without touching the shared state. It replicates
// Ensure + RegressForSeason on a local copy, so the predictor stays
// read-only while agreeing with what the engine would produce.
func (s State) EffectiveRating(team string, season int, cfg Config) float64 {
	tr, ok := s[team]
	if !ok {
		return cfg.BaseRating
	}
	rating := tr.Rating
	if season > tr.Season {
		rating = cfg.BaseRating + (rating-cfg.BaseRating)*(1-cfg.RegressionFactor)
	}
	return rating
}
