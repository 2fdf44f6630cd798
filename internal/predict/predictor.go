// Package predict projects win probability, point spread, and fair
// moneylines for games that have not been played, reading a frozen
// rating state without mutating it.
package predict

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/oddsmath"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

// Predictor turns upcoming games into predictions against a ratings
// snapshot produced by a rating ingest.
type Predictor struct {
	cfg    rating.Config
	logger *logrus.Logger
}

// NewPredictor creates a predictor sharing the engine's constants, so
// its lazy-seed and season-regression behavior matches what the engine
// would have produced for the same team/season.
func NewPredictor(cfg rating.Config, logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Predictor{cfg: cfg, logger: logger}
}

// Predict computes a prediction per upcoming game. A team with no
// completed games (or none this season) is seeded or regressed on a
// local copy of its state; the shared state map is never written.
//
// ModelSpread is home-centric: -(ratingDiff / spreadFactor), so a
// negative value favors the home team. No margin-of-victory term
// applies, there is no observed outcome yet.
func (p *Predictor) Predict(upcoming []models.UpcomingGame, state rating.State) []models.Prediction {
	predictions := make([]models.Prediction, 0, len(upcoming))
	for i := range upcoming {
		predictions = append(predictions, p.predictGame(&upcoming[i], state))
	}

	p.logger.WithField("predictions", len(predictions)).Info("Predictions generated")
	return predictions
}

func (p *Predictor) predictGame(g *models.UpcomingGame, state rating.State) models.Prediction {
	homeRating := state.EffectiveRating(g.HomeTeam, g.Season, p.cfg)
	awayRating := state.EffectiveRating(g.AwayTeam, g.Season, p.cfg)

	advantage := p.cfg.HomeAdvantage
	if g.Neutral {
		advantage = p.cfg.NeutralAdvantage
	}

	diff := homeRating + advantage - awayRating
	homeProb := oddsmath.ProbFromRatingDiff(diff)

	pred := models.Prediction{
		ID:          uuid.New(),
		GameID:      g.GameID,
		Season:      g.Season,
		Week:        g.Week,
		Date:        g.Date,
		HomeTeam:    g.HomeTeam,
		AwayTeam:    g.AwayTeam,
		Neutral:     g.Neutral,
		RatingDiff:  diff,
		HomeWinProb: homeProb,
		AwayWinProb: 1 - homeProb,
		ModelSpread: -(diff / p.cfg.SpreadFactor),
	}

	if ml, err := oddsmath.ProbToAmerican(homeProb); err == nil {
		pred.HomeFairMoneyline = &ml
	}
	if ml, err := oddsmath.ProbToAmerican(1 - homeProb); err == nil {
		pred.AwayFairMoneyline = &ml
	}
	return pred
}
