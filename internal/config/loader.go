// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables prefixed GRIDIRON_EDGE_ override file values
	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, tolerating a missing config file entirely.
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")

	v.SetEnvPrefix("GRIDIRON_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gridiron-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Rating model defaults. One rating point of spread is 25 Elo; home
	// advantage of 1.5 points is therefore 37.5.
	v.SetDefault("rating.k_factor", 20.0)
	v.SetDefault("rating.base_rating", 1500.0)
	v.SetDefault("rating.home_advantage", 37.5)
	v.SetDefault("rating.neutral_advantage", 0.0)
	v.SetDefault("rating.regression_factor", 0.2)
	v.SetDefault("rating.spread_factor", 25.0)
	v.SetDefault("rating.mov_dampen", true)
	v.SetDefault("rating.mov_exponent", 0.7)
	v.SetDefault("rating.mov_base", 2.2)
	v.SetDefault("rating.mov_slope", 0.001)

	v.SetDefault("betting.stake", 100.0)
	v.SetDefault("betting.min_ev", 0.0)
	v.SetDefault("betting.max_results", 0)
	v.SetDefault("betting.markets", []string{"h2h", "spreads", "totals"})

	v.SetDefault("odds_api.base_url", "https://api.the-odds-api.com")
	v.SetDefault("odds_api.sport_key", "americanfootball_nfl")
	v.SetDefault("odds_api.regions", "us")
	v.SetDefault("odds_api.cache_ttl_seconds", 300)
	v.SetDefault("odds_api.timeout_seconds", 30)
	v.SetDefault("odds_api.max_retries", 3)
	v.SetDefault("odds_api.requests_per_second", 1.0)

	v.SetDefault("data.games_path", "data/games.csv")
	v.SetDefault("data.upcoming_path", "data/upcoming.csv")
	v.SetDefault("data.market_path", "")

	v.SetDefault("sync.schedule", "*/15 * * * *")
	v.SetDefault("sync.listen_address", ":8080")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

// ReloadFromEnv reloads the full configuration when a config path is
// provided through the environment.
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv("GRIDIRON_EDGE_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}
