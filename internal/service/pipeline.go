// Package service wires the rating engine, predictor, market data and
// edge calculator into end-to-end pipeline runs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/edge"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/market"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/predict"
	"github.com/yourusername/gridiron-edge/internal/rating"
)

// OddsFetcher abstracts the live odds feed so the pipeline can be run
// against a fixture in tests.
type OddsFetcher interface {
	FetchEvents(ctx context.Context) ([]models.OddsEvent, error)
}

// Pipeline orchestrates a full run: replay the game history into
// ratings, project upcoming matchups, pull the market, and rank the
// disagreements between the two.
type Pipeline struct {
	cfg        *config.Config
	engine     *rating.Engine
	predictor  *predict.Predictor
	calculator *edge.Calculator
	odds       OddsFetcher
	logger     *logrus.Logger
	edgeLog    *logger.EdgeLogger
	ratingLog  *logger.RatingLogger
}

// NewPipeline creates a pipeline from application configuration. The
// odds fetcher may be nil, in which case edge scans run model-only
// against CSV market rows.
func NewPipeline(cfg *config.Config, odds OddsFetcher, log *logrus.Logger) *Pipeline {
	engineCfg := cfg.EngineConfig()
	return &Pipeline{
		cfg:        cfg,
		engine:     rating.NewEngine(engineCfg, log),
		predictor:  predict.NewPredictor(engineCfg, log),
		calculator: edge.NewCalculator(engineCfg, decimal.NewFromFloat(cfg.Betting.Stake)),
		odds:       odds,
		logger:     log,
		edgeLog:    logger.NewEdgeLogger(log),
		ratingLog:  logger.NewRatingLogger(log),
	}
}

// BuildRatings replays the configured game history into a fresh rating
// state and returns standings, history and the final state.
func (p *Pipeline) BuildRatings() (*rating.Result, error) {
	start := time.Now()

	games, err := datasource.LoadGames(p.cfg.Data.GamesPath, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load game history: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("game history at %s is empty", p.cfg.Data.GamesPath)
	}

	result := p.engine.Ingest(games)

	elapsed := time.Since(start)
	metrics.RecordIngest(len(games), elapsed.Seconds())
	metrics.UpdateTeamsRated(len(result.State))
	p.ratingLog.LogIngest(len(games), len(result.State), elapsed)

	return result, nil
}

// PredictUpcoming projects the configured upcoming slate against a
// rating state. When a market CSV is configured its rows are merged
// into the predictions for side-by-side comparison.
func (p *Pipeline) PredictUpcoming(state rating.State) ([]models.Prediction, error) {
	if p.cfg.Data.UpcomingPath == "" {
		return nil, fmt.Errorf("no upcoming games path configured")
	}

	upcoming, err := datasource.LoadUpcoming(p.cfg.Data.UpcomingPath, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming games: %w", err)
	}

	predictions := p.predictor.Predict(upcoming, state)
	metrics.PredictionsGeneratedTotal.Add(float64(len(predictions)))

	if p.cfg.Data.MarketPath != "" {
		rows, err := datasource.LoadMarketRows(p.cfg.Data.MarketPath, p.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load market rows: %w", err)
		}
		predictions = market.Merge(predictions, rows, p.logger)
	}

	return predictions, nil
}

// BuildConsensus pulls the live odds feed and reduces it to best-price
// consensus entries per matchup.
func (p *Pipeline) BuildConsensus(ctx context.Context) (models.ConsensusMap, error) {
	if p.odds == nil {
		return nil, fmt.Errorf("no odds feed configured")
	}

	events, err := p.odds.FetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds feed: %w", err)
	}

	consensus := market.BuildConsensus(events, p.logger)
	metrics.UpdateConsensusEntries(len(consensus))
	return consensus, nil
}

// ScanEdges runs the full pipeline and returns ranked opportunities
// where the model and the market disagree.
func (p *Pipeline) ScanEdges(ctx context.Context) ([]models.EdgeReport, error) {
	start := time.Now()

	result, err := p.BuildRatings()
	if err != nil {
		return nil, err
	}

	predictions, err := p.PredictUpcoming(result.State)
	if err != nil {
		return nil, err
	}

	consensus, err := p.BuildConsensus(ctx)
	if err != nil {
		return nil, err
	}

	opts := edge.RankOptions{
		MinEV: p.cfg.Betting.MinEV,
		Limit: p.cfg.Betting.MaxResults,
	}
	reports := p.calculator.RankOpportunities(predictions, consensus, opts, p.logger)

	for i := range reports {
		p.edgeLog.LogOpportunity(&reports[i])
	}
	p.edgeLog.LogBatch(len(predictions), len(reports), opts.MinEV)

	metrics.RecordEdgesDetected(len(reports))
	metrics.RecordPipelineRun(time.Since(start).Seconds())

	return reports, nil
}

// EvaluateBet prices a single user-specified bet against the current
// model state and, when a feed is available, the market consensus.
func (p *Pipeline) EvaluateBet(ctx context.Context, home, away string, bet models.BetRequest) (*models.EdgeReport, error) {
	result, err := p.BuildRatings()
	if err != nil {
		return nil, err
	}

	predictions, err := p.PredictUpcoming(result.State)
	if err != nil {
		return nil, err
	}

	var pred *models.Prediction
	for i := range predictions {
		if predictions[i].HomeTeam == home && predictions[i].AwayTeam == away {
			pred = &predictions[i]
			break
		}
	}
	if pred == nil {
		return nil, fmt.Errorf("no upcoming matchup %s vs %s", away, home)
	}

	var cons *models.ConsensusEntry
	if p.odds != nil {
		consensus, err := p.BuildConsensus(ctx)
		if err != nil {
			p.logger.WithError(err).Warn("Consensus unavailable, evaluating model-only")
		} else {
			cons = consensus[models.MatchupKey{HomeTeam: home, AwayTeam: away}]
		}
	}

	return p.calculator.Evaluate(pred, cons, bet)
}
