package rating

// Config holds the rating formula constants. They are configuration,
// not fitted parameters; the defaults mirror the standard NFL Elo
// setup this engine was built around.
type Config struct {
	// KFactor scales every rating update.
	KFactor float64
	// BaseRating seeds unseen teams and anchors season regression.
	BaseRating float64
	// HomeAdvantage is added to the home team's effective rating, in
	// rating points, for non-neutral games.
	HomeAdvantage float64
	// NeutralAdvantage replaces HomeAdvantage on neutral sites.
	NeutralAdvantage float64
	// RegressionFactor is the fraction of a team's distance from base
	// removed at each season boundary, in [0,1].
	RegressionFactor float64
	// SpreadFactor converts rating points to scoreboard points.
	SpreadFactor float64
	// MovDampen enables the margin-of-victory multiplier.
	MovDampen bool
	// MovExponent is the sub-linear margin exponent.
	MovExponent float64
	// MovBase and MovSlope shape the dampening denominator
	// base + slope*|diff|: the wider the pre-game gap, the smaller the
	// multiplier, so blowouts by big favorites move ratings less.
	MovBase  float64
	MovSlope float64
}

// DefaultConfig returns the stock NFL constants.
func DefaultConfig() Config {
	return Config{
		KFactor:          20,
		BaseRating:       1500,
		HomeAdvantage:    37.5, // 1.5 points at 25 rating points per point
		NeutralAdvantage: 0,
		RegressionFactor: 0.2,
		SpreadFactor:     25,
		MovDampen:        true,
		MovExponent:      0.7,
		MovBase:          2.2,
		MovSlope:         0.001,
	}
}

// advantage returns the rating-point bonus for the home side.
func (c Config) advantage(neutral bool) float64 {
	if neutral {
		return c.NeutralAdvantage
	}
	return c.HomeAdvantage
}
