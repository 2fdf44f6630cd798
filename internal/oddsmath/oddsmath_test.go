package oddsmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbFromRatingDiffSymmetry(t *testing.T) {
	diffs := []float64{0, 1, 37.5, 55, 100, 250, 400, 1000}
	for _, d := range diffs {
		sum := ProbFromRatingDiff(d) + ProbFromRatingDiff(-d)
		assert.InDelta(t, 1.0, sum, 1e-12, "diff %v", d)
	}
}

func TestProbFromRatingDiffKnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, ProbFromRatingDiff(0), 1e-12)
	// A full 400-point gap is a 10:1 favorite on this curve.
	assert.InDelta(t, 10.0/11.0, ProbFromRatingDiff(400), 1e-9)
	assert.InDelta(t, 0.578, ProbFromRatingDiff(55), 0.001)
}

func TestProbToAmerican(t *testing.T) {
	tests := []struct {
		prob float64
		want int
	}{
		{0.5, -100},
		{0.6, -150},
		{0.75, -300},
		{0.4, 150},
		{0.25, 300},
	}
	for _, tt := range tests {
		got, err := ProbToAmerican(tt.prob)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "prob %v", tt.prob)
	}
}

func TestProbToAmericanDomain(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
		_, err := ProbToAmerican(p)
		assert.Error(t, err, "prob %v", p)
	}
}

func TestAmericanToImpliedProb(t *testing.T) {
	assert.InDelta(t, 0.5238, AmericanToImpliedProb(-110), 0.0001)
	assert.InDelta(t, 0.5, AmericanToImpliedProb(100), 1e-12)
	assert.InDelta(t, 0.6, AmericanToImpliedProb(-150), 1e-12)
	assert.InDelta(t, 0.4, AmericanToImpliedProb(150), 1e-12)
}

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		odds int
		want float64
	}{
		{100, 2.0},
		{150, 2.5},
		{-150, 1 + 100.0/150.0},
		{-110, 1 + 100.0/110.0},
	}
	for _, tt := range tests {
		got, err := AmericanToDecimal(tt.odds)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12)
	}

	_, err := AmericanToDecimal(0)
	assert.Error(t, err)
}

// Round trip through integer odds is lossy only by odds rounding.
func TestOddsRoundTrip(t *testing.T) {
	for p := 0.05; p < 0.95; p += 0.025 {
		odds, err := ProbToAmerican(p)
		require.NoError(t, err)
		back := AmericanToImpliedProb(odds)
		assert.InDelta(t, p, back, 0.005, "prob %v via odds %d", p, odds)
	}
}

func TestExpectedValue(t *testing.T) {
	fair := AmericanToImpliedProb(-110)

	// Fair-odds case is exactly zero EV.
	ev, err := ExpectedValue(fair, -110)
	require.NoError(t, err)
	assert.InDelta(t, 0, ev, 1e-12)

	// Above the implied probability the bet is strictly +EV.
	ev, err = ExpectedValue(fair+0.05, -110)
	require.NoError(t, err)
	assert.Greater(t, ev, 0.0)

	// Below it, strictly -EV.
	ev, err = ExpectedValue(fair-0.05, -110)
	require.NoError(t, err)
	assert.Less(t, ev, 0.0)

	_, err = ExpectedValue(0.5, 0)
	assert.Error(t, err)
	_, err = ExpectedValue(math.NaN(), -110)
	assert.Error(t, err)
}

func TestRemoveVig(t *testing.T) {
	p1 := AmericanToImpliedProb(-110)
	p2 := AmericanToImpliedProb(-110)
	fair1, fair2, err := RemoveVig(p1, p2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fair1, 1e-12)
	assert.InDelta(t, 0.5, fair2, 1e-12)
	assert.InDelta(t, 1.0, fair1+fair2, 1e-12)

	// Uneven market keeps its ordering after normalization.
	fair1, fair2, err = RemoveVig(AmericanToImpliedProb(-150), AmericanToImpliedProb(+130))
	require.NoError(t, err)
	assert.Greater(t, fair1, fair2)
	assert.InDelta(t, 1.0, fair1+fair2, 1e-12)

	_, _, err = RemoveVig(0, 0)
	assert.Error(t, err)
}
