// Package logger provides audit logging for detected edges.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// EdgeLogger provides a dedicated audit trail for edge detections.
// Every surfaced opportunity is logged with the numbers that produced
// it so a stale line can be traced after the fact.
type EdgeLogger struct {
	*logrus.Entry
}

// NewEdgeLogger creates a new edge audit logger.
func NewEdgeLogger(baseLogger *logrus.Logger) *EdgeLogger {
	return &EdgeLogger{
		Entry: baseLogger.WithField("component", "edge"),
	}
}

// LogOpportunity logs a detected betting opportunity.
func (el *EdgeLogger) LogOpportunity(report *models.EdgeReport) {
	fields := logrus.Fields{
		"report_id": report.ID.String(),
		"home_team": report.HomeTeam,
		"away_team": report.AwayTeam,
		"season":    report.Season,
		"week":      report.Week,
		"bet_type":  string(report.Bet.Type),
		"odds":      report.Bet.Odds,
		"timestamp": time.Now().Unix(),
	}
	if report.Bet.Line != nil {
		fields["line"] = *report.Bet.Line
	}
	if report.ModelEV != nil {
		fields["model_ev"] = *report.ModelEV
	}
	if report.ConsensusEV != nil {
		fields["consensus_ev"] = *report.ConsensusEV
	}
	if report.ConsensusBook != nil {
		fields["consensus_book"] = *report.ConsensusBook
	}
	el.WithFields(fields).Info("Edge opportunity detected")
}

// LogBatch logs a summary of a ranking pass.
func (el *EdgeLogger) LogBatch(evaluated, surfaced int, minEV float64) {
	el.WithFields(logrus.Fields{
		"evaluated": evaluated,
		"surfaced":  surfaced,
		"min_ev":    minEV,
	}).Info("Edge ranking pass complete")
}

// RatingLogger provides component-scoped logging for the rating engine.
type RatingLogger struct {
	*logrus.Entry
}

// NewRatingLogger creates a new rating engine logger.
func NewRatingLogger(baseLogger *logrus.Logger) *RatingLogger {
	return &RatingLogger{
		Entry: baseLogger.WithField("component", "rating"),
	}
}

// LogIngest logs a completed replay of the game history.
func (rl *RatingLogger) LogIngest(games, teams int, elapsed time.Duration) {
	rl.WithFields(logrus.Fields{
		"games":      games,
		"teams":      teams,
		"elapsed_ms": elapsed.Milliseconds(),
	}).Info("Game history ingested")
}

// LogSeasonRollover logs the first sighting of a new season for a team.
func (rl *RatingLogger) LogSeasonRollover(team string, season int, before, after float64) {
	rl.WithFields(logrus.Fields{
		"team":          team,
		"season":        season,
		"rating_before": before,
		"rating_after":  after,
	}).Debug("Season regression applied")
}
