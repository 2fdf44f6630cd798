// Package oddsmath provides pure conversions between win probability,
// American odds, and decimal odds, plus expected-value calculation.
//
// Undefined inputs (probability outside (0,1), zero American odds)
// come back as errors; callers translate those into absent fields so a
// single bad quote never aborts a batch.
package oddsmath

import (
	"fmt"
	"math"
)

// ProbFromRatingDiff converts a rating differential to a home win
// probability on the standard logistic curve 1 / (1 + 10^(-diff/400)).
// Defined for all reals, range strictly inside (0,1).
func ProbFromRatingDiff(diff float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, -diff/400.0))
}

// ProbToAmerican converts a win probability to fair American odds,
// rounded to the nearest integer. Probabilities at or outside (0,1)
// have no defined odds.
func ProbToAmerican(prob float64) (int, error) {
	if math.IsNaN(prob) || prob <= 0 || prob >= 1 {
		return 0, fmt.Errorf("no American odds for probability %v", prob)
	}
	if prob >= 0.5 {
		return int(math.Round(-100 * prob / (1 - prob))), nil
	}
	return int(math.Round(100 * (1 - prob) / prob)), nil
}

// AmericanToImpliedProb converts American odds to the probability the
// price implies (vig included). Zero odds imply an even coin by the
// non-negative branch of the formula.
func AmericanToImpliedProb(odds int) float64 {
	if odds < 0 {
		return float64(-odds) / (float64(-odds) + 100)
	}
	return 100 / (float64(odds) + 100)
}

// AmericanToDecimal converts American odds to decimal odds. Odds of
// exactly zero are undefined.
func AmericanToDecimal(odds int) (float64, error) {
	if odds == 0 {
		return 0, fmt.Errorf("decimal odds undefined for American odds 0")
	}
	if odds > 0 {
		return 1 + float64(odds)/100, nil
	}
	return 1 + 100/float64(-odds), nil
}

// ExpectedValue returns the expected profit per 1 unit staked for a
// bet with the given win probability at the given American odds:
// probWin*(decimal-1) - (1-probWin). Fails when the odds have no
// decimal form or the probability is out of range.
func ExpectedValue(probWin float64, odds int) (float64, error) {
	if math.IsNaN(probWin) || probWin < 0 || probWin > 1 {
		return 0, fmt.Errorf("invalid win probability %v", probWin)
	}
	decimal, err := AmericanToDecimal(odds)
	if err != nil {
		return 0, err
	}
	return probWin*(decimal-1) - (1 - probWin), nil
}

// RemoveVig normalizes two implied probabilities for complementary
// outcomes so they sum to 1, stripping the sportsbook margin. Fails
// when the probabilities cannot be normalized (non-positive sum).
func RemoveVig(prob1, prob2 float64) (fair1, fair2 float64, err error) {
	if math.IsNaN(prob1) || math.IsNaN(prob2) || prob1 < 0 || prob2 < 0 {
		return 0, 0, fmt.Errorf("implied probabilities must be non-negative")
	}
	total := prob1 + prob2
	if total <= 0 {
		return 0, 0, fmt.Errorf("cannot de-vig: probabilities sum to %v", total)
	}
	return prob1 / total, prob2 / total, nil
}
