// Package market joins model predictions with sportsbook data: line
// merges keyed by matchup and a best-price consensus built across
// books.
package market

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
)

type mergeKey struct {
	Season   int
	Week     int
	HomeTeam string
	AwayTeam string
}

// Merge joins predictions with market rows on (season, week, home,
// away). Predictions without a matching row pass through unchanged;
// matched ones gain the market fields and the derived edges:
// homeSpreadEdge = marketSpread - modelSpread (points in the home
// bettor's favor) and moneylineEdge = model prob - implied prob.
func Merge(predictions []models.Prediction, rows []models.MarketRow, logger *logrus.Logger) []models.Prediction {
	if logger == nil {
		logger = logrus.New()
	}

	byMatchup := make(map[mergeKey]*models.MarketRow, len(rows))
	for i := range rows {
		row := &rows[i]
		byMatchup[mergeKey{row.Season, row.Week, row.HomeTeam, row.AwayTeam}] = row
	}

	merged := make([]models.Prediction, len(predictions))
	matches := 0
	for i := range predictions {
		merged[i] = predictions[i]
		pred := &merged[i]

		row, ok := byMatchup[mergeKey{pred.Season, pred.Week, pred.HomeTeam, pred.AwayTeam}]
		if !ok {
			continue
		}
		matches++

		if row.Book != "" {
			book := row.Book
			pred.Book = &book
		}
		pred.MarketTotal = row.Total
		pred.HomeMoneyline = row.MoneylineHome
		pred.AwayMoneyline = row.MoneylineAway

		if row.SpreadHome != nil {
			spread := *row.SpreadHome
			pred.MarketSpread = &spread
			edge := spread - pred.ModelSpread
			pred.HomeSpreadEdge = &edge
		}
		if row.MoneylineHome != nil {
			implied := oddsmath.AmericanToImpliedProb(*row.MoneylineHome)
			edge := pred.HomeWinProb - implied
			pred.MoneylineEdge = &edge
		}
	}

	logger.WithFields(logrus.Fields{
		"predictions": len(predictions),
		"market_rows": len(rows),
		"matched":     matches,
	}).Debug("Market merge complete")

	return merged
}
