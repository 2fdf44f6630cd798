package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamRating holds the live rating state for one team. It is created
// lazily the first time a team appears in the game log and mutated on
// every game the team plays. A single TeamRating map is owned by one
// ingest run at a time.
type TeamRating struct {
	Team         string     `json:"team"`
	Rating       float64    `json:"rating"`
	Season       int        `json:"season"` // last season seen, guards regression
	GamesPlayed  int        `json:"games_played"`
	LastGameDate *time.Time `json:"last_game_date,omitempty"`
}

// RatingHistoryEntry is an immutable audit record for one processed
// game: ratings before and after, the expectation the update was based
// on, and the applied delta. Entries are append-only.
type RatingHistoryEntry struct {
	ID            uuid.UUID  `json:"id"`
	GameID        *string    `json:"game_id,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Season        int        `json:"season"`
	Week          int        `json:"week"`
	HomeTeam      string     `json:"home_team"`
	AwayTeam      string     `json:"away_team"`
	PreHome       float64    `json:"pre_home"`
	PreAway       float64    `json:"pre_away"`
	PostHome      float64    `json:"post_home"`
	PostAway      float64    `json:"post_away"`
	HomeAdvantage float64    `json:"home_advantage"` // rating points applied, 0 on neutral sites
	RatingDiff    float64    `json:"rating_diff"`    // pre-game, home advantage included
	ExpectedHome  float64    `json:"expected_home"`
	Actual        float64    `json:"actual"` // 1 home win, 0 home loss, 0.5 tie
	Margin        int        `json:"margin"`
	MovMultiplier float64    `json:"mov_multiplier"`
	HomeDelta     float64    `json:"home_delta"` // away delta is the exact negation
}

// TeamStanding is one row of the presentation-ready ratings table.
type TeamStanding struct {
	Rank        int     `json:"rank"`
	Team        string  `json:"team"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"games_played"`
	Season      int     `json:"season"`
}
