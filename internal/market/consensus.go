package market

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
	"github.com/yourusername/gridiron-edge/internal/teams"
)

// BuildConsensus reduces a sportsbook feed to the best available price
// per side per market across all books, then de-vigs each market where
// both sides were quoted. "Best" means highest decimal equivalent, the
// price most favorable to the bettor. Spread and total markets at
// different point values stay independent entries.
func BuildConsensus(events []models.OddsEvent, logger *logrus.Logger) models.ConsensusMap {
	if logger == nil {
		logger = logrus.New()
	}

	consensus := make(models.ConsensusMap, len(events))
	for i := range events {
		event := &events[i]
		home := teams.NormalizeFullName(event.HomeTeam)
		away := teams.NormalizeFullName(event.AwayTeam)

		entry := &models.ConsensusEntry{
			HomeTeam: home,
			AwayTeam: away,
			Spreads:  make(map[float64]*models.SpreadConsensus),
			Totals:   make(map[float64]*models.TotalConsensus),
		}

		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				collectMarket(entry, book.Title, market, home, away)
			}
		}

		devigEntry(entry)
		consensus[models.MatchupKey{HomeTeam: home, AwayTeam: away}] = entry
	}

	logger.WithField("matchups", len(consensus)).Debug("Consensus built")
	return consensus
}

func collectMarket(entry *models.ConsensusEntry, book string, market models.FeedMarket, home, away string) {
	for _, outcome := range market.Outcomes {
		switch market.Key {
		case models.FeedMarketMoneyline:
			collectMoneyline(entry, book, outcome, home, away)
		case models.FeedMarketSpreads:
			collectSpread(entry, book, outcome, home, away)
		case models.FeedMarketTotals:
			collectTotal(entry, book, outcome)
		}
	}
}

func collectMoneyline(entry *models.ConsensusEntry, book string, o models.FeedOutcome, home, away string) {
	quote := &models.MoneylineQuote{Price: o.Price, Book: book}
	switch teams.NormalizeFullName(o.Name) {
	case home:
		if betterPrice(o.Price, entry.HomeMoneyline) {
			entry.HomeMoneyline = quote
		}
	case away:
		if betterPrice(o.Price, entry.AwayMoneyline) {
			entry.AwayMoneyline = quote
		}
	}
}

func collectSpread(entry *models.ConsensusEntry, book string, o models.FeedOutcome, home, away string) {
	if o.Point == nil {
		return
	}
	point := *o.Point
	quote := &models.SpreadQuote{Point: point, Price: o.Price, Book: book}

	switch teams.NormalizeFullName(o.Name) {
	case home:
		sc := ensureSpread(entry, point)
		if quoteBeatsSpread(o.Price, sc.Home) {
			sc.Home = quote
		}
	case away:
		// The away side of a home -3.5 spread is quoted at +3.5; key
		// both sides by the home-centric point.
		sc := ensureSpread(entry, -point)
		if quoteBeatsSpread(o.Price, sc.Away) {
			sc.Away = quote
		}
	}
}

func collectTotal(entry *models.ConsensusEntry, book string, o models.FeedOutcome) {
	if o.Point == nil {
		return
	}
	point := *o.Point
	tc, ok := entry.Totals[point]
	if !ok {
		tc = &models.TotalConsensus{Point: point}
		entry.Totals[point] = tc
	}
	quote := &models.TotalQuote{Point: point, Price: o.Price, Book: book}

	switch o.Name {
	case models.FeedOutcomeOver:
		if quoteBeatsTotal(o.Price, tc.Over) {
			tc.Over = quote
		}
	case models.FeedOutcomeUnder:
		if quoteBeatsTotal(o.Price, tc.Under) {
			tc.Under = quote
		}
	}
}

func ensureSpread(entry *models.ConsensusEntry, homePoint float64) *models.SpreadConsensus {
	sc, ok := entry.Spreads[homePoint]
	if !ok {
		sc = &models.SpreadConsensus{Point: homePoint}
		entry.Spreads[homePoint] = sc
	}
	return sc
}

// betterPrice reports whether a candidate American price beats the
// incumbent quote by decimal value.
func betterPrice(candidate int, incumbent *models.MoneylineQuote) bool {
	if incumbent == nil {
		return true
	}
	return decimalBeats(candidate, incumbent.Price)
}

func quoteBeatsSpread(candidate int, incumbent *models.SpreadQuote) bool {
	if incumbent == nil {
		return true
	}
	return decimalBeats(candidate, incumbent.Price)
}

func quoteBeatsTotal(candidate int, incumbent *models.TotalQuote) bool {
	if incumbent == nil {
		return true
	}
	return decimalBeats(candidate, incumbent.Price)
}

func decimalBeats(candidate, incumbent int) bool {
	cand, err := oddsmath.AmericanToDecimal(candidate)
	if err != nil {
		return false
	}
	inc, err := oddsmath.AmericanToDecimal(incumbent)
	if err != nil {
		return true
	}
	return cand > inc
}

// devigEntry computes fair probability pairs for every market where
// both sides were seen. One-sided markets keep nil probabilities.
func devigEntry(entry *models.ConsensusEntry) {
	if entry.HomeMoneyline != nil && entry.AwayMoneyline != nil {
		h := oddsmath.AmericanToImpliedProb(entry.HomeMoneyline.Price)
		a := oddsmath.AmericanToImpliedProb(entry.AwayMoneyline.Price)
		if fairH, fairA, err := oddsmath.RemoveVig(h, a); err == nil {
			entry.HomeMLFairProb = &fairH
			entry.AwayMLFairProb = &fairA
		}
	}

	for _, sc := range entry.Spreads {
		if sc.Home == nil || sc.Away == nil {
			continue
		}
		h := oddsmath.AmericanToImpliedProb(sc.Home.Price)
		a := oddsmath.AmericanToImpliedProb(sc.Away.Price)
		if fairH, fairA, err := oddsmath.RemoveVig(h, a); err == nil {
			sc.HomeFairProb = &fairH
			sc.AwayFairProb = &fairA
		}
	}

	for _, tc := range entry.Totals {
		if tc.Over == nil || tc.Under == nil {
			continue
		}
		o := oddsmath.AmericanToImpliedProb(tc.Over.Price)
		u := oddsmath.AmericanToImpliedProb(tc.Under.Price)
		if fairO, fairU, err := oddsmath.RemoveVig(o, u); err == nil {
			tc.OverFairProb = &fairO
			tc.UnderFairProb = &fairU
		}
	}
}
