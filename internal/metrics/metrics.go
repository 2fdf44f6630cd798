// Package metrics provides the centralized Prometheus metrics registry
// for the rating and edge pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "games_processed_total",
		Help:      "Total number of completed games folded into ratings",
	})
	GamesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "games_dropped_total",
		Help:      "Total number of input rows dropped as unusable",
	})
	PredictionsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "predictions_generated_total",
		Help:      "Total number of matchup predictions generated",
	})
	EdgesDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "edges_detected_total",
		Help:      "Total number of positive-EV opportunities detected",
	})
	OddsAPIRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_api_requests_total",
		Help:      "Total number of requests sent to the odds feed",
	})
	OddsAPIErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_api_errors_total",
		Help:      "Total number of failed odds feed requests",
	})
)

// Gauge metrics
var (
	TeamsRated = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "teams_rated",
		Help:      "Number of teams currently carrying a rating",
	})
	ConsensusEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "consensus_entries",
		Help:      "Number of matchups in the latest consensus build",
	})
	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "stream_clients",
		Help:      "Number of connected edge stream subscribers",
	})
)

// Histogram metrics
var (
	IngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "ingest_duration_seconds",
		Help:      "Duration of a full game history ingest in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of an end-to-end pipeline run in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(GamesProcessedTotal)
		registry.MustRegister(GamesDroppedTotal)
		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(EdgesDetectedTotal)
		registry.MustRegister(OddsAPIRequestsTotal)
		registry.MustRegister(OddsAPIErrorsTotal)

		// Register gauge metrics
		registry.MustRegister(TeamsRated)
		registry.MustRegister(ConsensusEntries)
		registry.MustRegister(StreamClients)

		// Register histogram metrics
		registry.MustRegister(IngestDuration)
		registry.MustRegister(PipelineDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordIngest records a completed ratings ingest.
func RecordIngest(games int, durationSeconds float64) {
	GamesProcessedTotal.Add(float64(games))
	IngestDuration.Observe(durationSeconds)
}

// RecordPipelineRun records an end-to-end pipeline run.
func RecordPipelineRun(durationSeconds float64) {
	PipelineDuration.Observe(durationSeconds)
}

// RecordEdgesDetected records a batch of detected opportunities.
func RecordEdgesDetected(count int) {
	EdgesDetectedTotal.Add(float64(count))
}

// UpdateTeamsRated updates the rated team count gauge.
func UpdateTeamsRated(count int) {
	TeamsRated.Set(float64(count))
}

// UpdateConsensusEntries updates the consensus matchup count gauge.
func UpdateConsensusEntries(count int) {
	ConsensusEntries.Set(float64(count))
}
