package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/config"
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
	gamesFile  string
	asJSON     bool
	limit      int
	team       string
	logger     *logrus.Logger
	cfg        *config.Config
	pipeline   *service.Pipeline
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&gamesFile, "games", "", "Override game history CSV path")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	standingsCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the top N teams")
	historyCmd.Flags().StringVarP(&team, "team", "t", "", "Filter history to one team")
}

var rootCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Replay game history into team power ratings",
	Long:  `Replays the configured game history through the rating engine and reports standings, per-game rating changes and model projections.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupDependencies()
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print current team standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStandings()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print per-game rating changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printHistory()
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Project the upcoming slate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPredictions()
	},
}

func main() {
	rootCmd.AddCommand(standingsCmd, historyCmd, predictCmd)

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
	if gamesFile != "" {
		cfg.Data.GamesPath = gamesFile
	}
	return config.Validate(cfg)
}

func setupDependencies() {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	// CLI output goes to stdout; keep log chatter off it.
	logger.SetOutput(os.Stderr)
	pipeline = service.NewPipeline(cfg, nil, logger)
}

func printStandings() error {
	result, err := pipeline.BuildRatings()
	if err != nil {
		return err
	}

	standings := result.Standings
	if limit > 0 && limit < len(standings) {
		standings = standings[:limit]
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(standings)
	}

	fmt.Printf("%-5s %-5s %9s %6s\n", "RANK", "TEAM", "RATING", "GP")
	for _, s := range standings {
		fmt.Printf("%-5d %-5s %9.1f %6d\n", s.Rank, s.Team, s.Rating, s.GamesPlayed)
	}
	return nil
}

func printHistory() error {
	result, err := pipeline.BuildRatings()
	if err != nil {
		return err
	}

	entries := result.History
	if team != "" {
		filtered := make([]models.RatingHistoryEntry, 0, len(entries))
		for _, e := range entries {
			if e.HomeTeam == team || e.AwayTeam == team {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	fmt.Printf("%-6s %-4s %-5s %-5s %8s %8s %8s %8s\n",
		"SEASON", "WEEK", "HOME", "AWAY", "PRE_H", "PRE_A", "POST_H", "POST_A")
	for _, e := range entries {
		fmt.Printf("%-6d %-4d %-5s %-5s %8.1f %8.1f %8.1f %8.1f\n",
			e.Season, e.Week, e.HomeTeam, e.AwayTeam,
			e.PreHome, e.PreAway, e.PostHome, e.PostAway)
	}
	return nil
}

func printPredictions() error {
	result, err := pipeline.BuildRatings()
	if err != nil {
		return err
	}

	predictions, err := pipeline.PredictUpcoming(result.State)
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(predictions)
	}

	fmt.Printf("%-6s %-4s %-5s %-5s %8s %8s %9s\n",
		"SEASON", "WEEK", "HOME", "AWAY", "H_WIN%", "SPREAD", "FAIR_ML")
	for _, p := range predictions {
		fairML := "n/a"
		if p.HomeFairMoneyline != nil {
			fairML = fmt.Sprintf("%+d", *p.HomeFairMoneyline)
		}
		fmt.Printf("%-6d %-4d %-5s %-5s %7.1f%% %+8.1f %9s\n",
			p.Season, p.Week, p.HomeTeam, p.AwayTeam,
			p.HomeWinProb*100, p.ModelSpread, fairML)
	}
	return nil
}
