package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	applogger "github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	asJSON     bool
	minEV      float64
	maxResults int

	homeTeam string
	awayTeam string
	betType  string
	betOdds  int
	betLine  float64
	lineSet  bool

	logger   *logrus.Logger
	cfg      *config.Config
	pipeline *service.Pipeline
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")

	scanCmd.Flags().Float64Var(&minEV, "min-ev", 0, "Minimum expected value per unit staked")
	scanCmd.Flags().IntVarP(&maxResults, "limit", "n", 0, "Cap the number of surfaced edges")

	evaluateCmd.Flags().StringVar(&homeTeam, "home", "", "Home team code")
	evaluateCmd.Flags().StringVar(&awayTeam, "away", "", "Away team code")
	evaluateCmd.Flags().StringVar(&betType, "bet", "home_ml", "Bet type: home_ml, away_ml, home_spread, away_spread, over, under")
	evaluateCmd.Flags().IntVar(&betOdds, "odds", 0, "American odds on offer")
	evaluateCmd.Flags().Float64Var(&betLine, "line", 0, "Point line for spread and total bets")
	evaluateCmd.MarkFlagRequired("home")
	evaluateCmd.MarkFlagRequired("away")
	evaluateCmd.MarkFlagRequired("odds")
}

var rootCmd = &cobra.Command{
	Use:   "edge-finder",
	Short: "Find positive-EV bets where the model and the market disagree",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupDependencies(cmd)
		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the live odds feed for edges across the upcoming slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context())
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Price a single bet against the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		lineSet = cmd.Flags().Changed("line")
		return runEvaluate(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(scanCmd, evaluateCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(cmd *cobra.Command) {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	logger.SetOutput(os.Stderr)

	if cmd.Flags().Changed("min-ev") {
		cfg.Betting.MinEV = minEV
	}
	if cmd.Flags().Changed("limit") {
		cfg.Betting.MaxResults = maxResults
	}

	odds := datasource.NewOddsAPIClient(oddsClientConfig(), logger)
	pipeline = service.NewPipeline(cfg, odds, logger)
}

func oddsClientConfig() datasource.OddsAPIConfig {
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

func runScan(ctx context.Context) error {
	reports, err := pipeline.ScanEdges(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(reports)
	}

	if len(reports) == 0 {
		fmt.Println("No edges above the EV floor.")
		return nil
	}

	fmt.Printf("%-5s %-5s %-12s %6s %7s %9s %9s %-12s\n",
		"HOME", "AWAY", "BET", "ODDS", "LINE", "MODEL_EV", "CONS_EV", "BOOK")
	for _, r := range reports {
		fmt.Printf("%-5s %-5s %-12s %+6d %7s %9s %9s %-12s\n",
			r.HomeTeam, r.AwayTeam, string(r.Bet.Type), r.Bet.Odds,
			formatLine(r.Bet.Line), formatEV(r.ModelEV), formatEV(r.ConsensusEV),
			formatBook(r.ConsensusBook))
	}
	return nil
}

func runEvaluate(ctx context.Context) error {
	bet := models.BetRequest{
		Type: models.BetType(betType),
		Odds: betOdds,
	}
	if lineSet {
		line := betLine
		bet.Line = &line
	}

	report, err := pipeline.EvaluateBet(ctx, homeTeam, awayTeam, bet)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Printf("%s @ %s, %s at %+d\n", report.AwayTeam, report.HomeTeam, bet.Type, bet.Odds)
	fmt.Printf("  model prob:     %s\n", formatProb(report.ModelProb))
	fmt.Printf("  market prob:    %s\n", formatProb(report.MarketProb))
	fmt.Printf("  consensus prob: %s\n", formatProb(report.ConsensusProb))
	fmt.Printf("  model EV:       %s\n", formatEV(report.ModelEV))
	fmt.Printf("  consensus EV:   %s\n", formatEV(report.ConsensusEV))
	if report.PointEdge != nil {
		fmt.Printf("  point edge:     %+.1f\n", *report.PointEdge)
	}
	if report.StakeEV != nil {
		fmt.Printf("  EV on %.0f stake: %s\n", cfg.Betting.Stake, report.StakeEV.StringFixed(2))
	}
	return nil
}

func formatLine(line *float64) string {
	if line == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f", *line)
}

func formatEV(ev *float64) string {
	if ev == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.3f", *ev)
}

func formatProb(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *p*100)
}

func formatBook(book *string) string {
	if book == nil {
		return "-"
	}
	return *book
}
