package models

import (
	"time"
)

// Market keys used by the odds feed. The feed shape is a fixed wire
// contract from the upstream odds API and must not be reshaped here.
const (
	FeedMarketMoneyline = "h2h"
	FeedMarketSpreads   = "spreads"
	FeedMarketTotals    = "totals"
)

// Total outcome names as they appear on the wire.
const (
	FeedOutcomeOver  = "Over"
	FeedOutcomeUnder = "Under"
)

// OddsEvent is one matchup in the sportsbook feed. Team names are
// free-text full names ("Green Bay Packers") and need name-to-code
// normalization before use.
type OddsEvent struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's set of markets for an event.
type Bookmaker struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate time.Time    `json:"last_update"`
	Markets    []FeedMarket `json:"markets"`
}

// FeedMarket is one market (h2h, spreads, totals) quoted by a book.
type FeedMarket struct {
	Key      string        `json:"key"`
	Outcomes []FeedOutcome `json:"outcomes"`
}

// FeedOutcome is a single priced outcome. Point is present for spreads
// and totals only.
type FeedOutcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"` // American odds
	Point *float64 `json:"point,omitempty"`
}
