// Package main provides the entry point for the odds sync daemon. It
// periodically re-pulls the odds feed, re-ranks edges against the
// model and streams each batch to websocket subscribers.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	applogger "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/stream"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		schedule   = flag.String("schedule", "", "Override cron schedule for edge scans")
		runOnce    = flag.Bool("once", false, "Run a single scan and exit")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if *schedule != "" {
		cfg.Sync.Schedule = *schedule
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Odds sync daemon starting")

	metrics.InitRegistry()

	// Wire the odds feed client and pipeline
	oddsClient := datasource.NewOddsAPIClient(oddsClientConfig(cfg), appLog)
	pipeline := service.NewPipeline(cfg, oddsClient, appLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *runOnce {
		reports, err := pipeline.ScanEdges(ctx)
		if err != nil {
			appLog.WithError(err).Fatal("Scan failed")
		}
		appLog.WithField("edges", len(reports)).Info("Scan complete")
		return
	}

	// Websocket hub for edge streaming
	hub := stream.NewHub(appLog)
	go hub.Run(ctx)

	// Scheduler for periodic scans
	sched := scheduler.NewScheduler(pipeline, hub, appLog)
	if err := sched.ScheduleEdgeScan(cfg.Sync.Schedule); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule edge scan")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	defer sched.Stop()

	// Health server, with Prometheus metrics when enabled
	healthServer := health.NewServer(health.Config{
		ServiceName:  "odds-sync",
		Version:      Version,
		Port:         fmt.Sprintf("%d", cfg.Metrics.Port),
		Logger:       appLog,
		ServeMetrics: cfg.Metrics.Enabled,
		MetricsPath:  cfg.Metrics.Path,
	})
	healthServer.RegisterChecker("scheduler", health.CheckerFunc(func(ctx context.Context) error {
		if !sched.IsRunning() {
			return fmt.Errorf("scheduler not running")
		}
		return nil
	}))
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}
	healthServer.SetReady(true)

	// Websocket endpoint for subscribers
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	wsServer := &http.Server{
		Addr:        cfg.Sync.ListenAddress,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	go func() {
		appLog.WithField("address", cfg.Sync.ListenAddress).Info("Edge stream listening")
		if err := wsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Stream server error")
		}
	}()

	appLog.WithField("schedule", cfg.Sync.Schedule).Info("Odds sync daemon running")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLog.WithField("signal", sig.String()).Info("Shutting down")

	healthServer.SetReady(false)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Stream server shutdown error")
	}
}

func oddsClientConfig(cfg *config.Config) datasource.OddsAPIConfig {
	clientCfg := datasource.DefaultOddsAPIConfig()
	clientCfg.BaseURL = cfg.OddsAPI.BaseURL
	clientCfg.APIKey = cfg.OddsAPI.APIKey
	clientCfg.SportKey = cfg.OddsAPI.SportKey
	clientCfg.Regions = cfg.OddsAPI.Regions
	clientCfg.Markets = cfg.Betting.Markets
	clientCfg.CacheTTL = cfg.OddsCacheTTL()
	clientCfg.HTTP.Timeout = cfg.OddsTimeout()
	clientCfg.HTTP.MaxRetries = cfg.OddsAPI.MaxRetries
	clientCfg.HTTP.RateLimit = cfg.OddsAPI.RequestsPerSecond
	return clientCfg
}
