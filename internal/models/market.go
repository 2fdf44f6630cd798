package models

import (
	"time"
)

// MarketRow is one sportsbook line for a matchup, as produced by the
// market CSV loader. Absent columns stay nil.
type MarketRow struct {
	Season        int        `json:"season"`
	Week          int        `json:"week"`
	Date          *time.Time `json:"date,omitempty"`
	HomeTeam      string     `json:"home_team"`
	AwayTeam      string     `json:"away_team"`
	Book          string     `json:"book"`
	SpreadHome    *float64   `json:"spread_home,omitempty"` // home-centric, negative favors home
	Total         *float64   `json:"total,omitempty"`
	MoneylineHome *int       `json:"moneyline_home,omitempty"`
	MoneylineAway *int       `json:"moneyline_away,omitempty"`
}

// MatchupKey identifies one matchup inside a consensus map.
type MatchupKey struct {
	HomeTeam string
	AwayTeam string
}

// MoneylineQuote is the best available moneyline price for one side,
// with the book that offered it.
type MoneylineQuote struct {
	Price int    `json:"price"` // American odds
	Book  string `json:"book"`
}

// SpreadQuote is the best available price for one side of a spread at
// a specific point value.
type SpreadQuote struct {
	Point float64 `json:"point"` // for the quoted side, e.g. home -3.5 or away +3.5
	Price int     `json:"price"`
	Book  string  `json:"book"`
}

// TotalQuote is the best available price for over or under at a
// specific total.
type TotalQuote struct {
	Point float64 `json:"point"`
	Price int     `json:"price"`
	Book  string  `json:"book"`
}

// SpreadConsensus collects the best prices for both sides of a spread
// at one point value, with de-vigged fair probabilities once both
// sides were seen. The key point is always home-centric.
type SpreadConsensus struct {
	Point        float64      `json:"point"`
	Home         *SpreadQuote `json:"home,omitempty"`
	Away         *SpreadQuote `json:"away,omitempty"`
	HomeFairProb *float64     `json:"home_fair_prob,omitempty"`
	AwayFairProb *float64     `json:"away_fair_prob,omitempty"`
}

// TotalConsensus collects the best over/under prices at one total.
type TotalConsensus struct {
	Point         float64     `json:"point"`
	Over          *TotalQuote `json:"over,omitempty"`
	Under         *TotalQuote `json:"under,omitempty"`
	OverFairProb  *float64    `json:"over_fair_prob,omitempty"`
	UnderFairProb *float64    `json:"under_fair_prob,omitempty"`
}

// ConsensusEntry aggregates the best available prices across all books
// for one matchup. Spread and total lines at different point values
// are tracked independently, never merged.
type ConsensusEntry struct {
	HomeTeam       string                       `json:"home_team"`
	AwayTeam       string                       `json:"away_team"`
	HomeMoneyline  *MoneylineQuote              `json:"home_moneyline,omitempty"`
	AwayMoneyline  *MoneylineQuote              `json:"away_moneyline,omitempty"`
	HomeMLFairProb *float64                     `json:"home_ml_fair_prob,omitempty"`
	AwayMLFairProb *float64                     `json:"away_ml_fair_prob,omitempty"`
	Spreads        map[float64]*SpreadConsensus `json:"spreads,omitempty"` // keyed by home point
	Totals         map[float64]*TotalConsensus  `json:"totals,omitempty"`  // keyed by total
}

// ConsensusMap is the per-matchup consensus produced from a sportsbook
// feed. A lookup miss means no consensus data, not a zero price.
type ConsensusMap map[MatchupKey]*ConsensusEntry
