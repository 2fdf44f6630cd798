package models

import (
	"time"
)

// Game represents a completed game in the historical log. Games are
// immutable once ingested; the rating engine replays them in
// chronological order.
type Game struct {
	GameID    *string    `json:"game_id,omitempty"`
	Season    int        `json:"season" validate:"required,gt=0"`
	Week      int        `json:"week" validate:"required,gt=0"`
	Date      *time.Time `json:"date,omitempty"`
	HomeTeam  string     `json:"home_team" validate:"required"`
	AwayTeam  string     `json:"away_team" validate:"required"`
	HomeScore int        `json:"home_score" validate:"gte=0"`
	AwayScore int        `json:"away_score" validate:"gte=0"`
	Neutral   bool       `json:"neutral_site"`
}

// Margin returns the home-centric score margin (positive when the home
// team won).
func (g *Game) Margin() int {
	return g.HomeScore - g.AwayScore
}

// Outcome returns the actual result from the home team's perspective:
// 1 for a win, 0 for a loss, 0.5 for a tie.
func (g *Game) Outcome() float64 {
	switch {
	case g.HomeScore > g.AwayScore:
		return 1
	case g.HomeScore < g.AwayScore:
		return 0
	default:
		return 0.5
	}
}

// UpcomingGame represents a scheduled game that has not been played yet.
type UpcomingGame struct {
	GameID   *string    `json:"game_id,omitempty"`
	Season   int        `json:"season" validate:"required,gt=0"`
	Week     int        `json:"week" validate:"required,gt=0"`
	Date     *time.Time `json:"date,omitempty"`
	HomeTeam string     `json:"home_team" validate:"required"`
	AwayTeam string     `json:"away_team" validate:"required"`
	Neutral  bool       `json:"neutral_site"`
}
