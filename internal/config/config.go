// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"time"

	"github.com/yourusername/gridiron-edge/internal/rating"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Rating  RatingConfig  `mapstructure:"rating" validate:"required"`
	Betting BettingConfig `mapstructure:"betting" validate:"required"`
	OddsAPI OddsAPIConfig `mapstructure:"odds_api" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	Sync    SyncConfig    `mapstructure:"sync" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// RatingConfig represents the rating model parameters
type RatingConfig struct {
	KFactor          float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	BaseRating       float64 `mapstructure:"base_rating" validate:"required,gt=0"`
	HomeAdvantage    float64 `mapstructure:"home_advantage" validate:"gte=0"`
	NeutralAdvantage float64 `mapstructure:"neutral_advantage" validate:"gte=0"`
	RegressionFactor float64 `mapstructure:"regression_factor" validate:"gte=0,lte=1"`
	SpreadFactor     float64 `mapstructure:"spread_factor" validate:"required,gt=0"`
	MovDampen        bool    `mapstructure:"mov_dampen"`
	MovExponent      float64 `mapstructure:"mov_exponent" validate:"gt=0,lte=1"`
	MovBase          float64 `mapstructure:"mov_base" validate:"gt=0"`
	MovSlope         float64 `mapstructure:"mov_slope" validate:"gte=0"`
}

// BettingConfig represents edge detection and staking configuration
type BettingConfig struct {
	Stake      float64  `mapstructure:"stake" validate:"required,gt=0"`
	MinEV      float64  `mapstructure:"min_ev" validate:"gte=-1"`
	MaxResults int      `mapstructure:"max_results" validate:"gte=0"`
	Markets    []string `mapstructure:"markets" validate:"required,min=1,markets"`
}

// OddsAPIConfig represents the sportsbook odds feed configuration
type OddsAPIConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	SportKey          string  `mapstructure:"sport_key" validate:"required"`
	Regions           string  `mapstructure:"regions" validate:"required"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
}

// DataConfig represents file-based data source locations
type DataConfig struct {
	GamesPath    string `mapstructure:"games_path" validate:"required"`
	UpcomingPath string `mapstructure:"upcoming_path"`
	MarketPath   string `mapstructure:"market_path"`
}

// SyncConfig represents the odds sync daemon configuration
type SyncConfig struct {
	Schedule      string `mapstructure:"schedule" validate:"required"`
	ListenAddress string `mapstructure:"listen_address" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// EngineConfig converts the file-level rating section into the engine's
// parameter struct.
func (c *Config) EngineConfig() rating.Config {
	return rating.Config{
		KFactor:          c.Rating.KFactor,
		BaseRating:       c.Rating.BaseRating,
		HomeAdvantage:    c.Rating.HomeAdvantage,
		NeutralAdvantage: c.Rating.NeutralAdvantage,
		RegressionFactor: c.Rating.RegressionFactor,
		SpreadFactor:     c.Rating.SpreadFactor,
		MovDampen:        c.Rating.MovDampen,
		MovExponent:      c.Rating.MovExponent,
		MovBase:          c.Rating.MovBase,
		MovSlope:         c.Rating.MovSlope,
	}
}

// OddsCacheTTL returns the feed cache TTL as a duration.
func (c *Config) OddsCacheTTL() time.Duration {
	return time.Duration(c.OddsAPI.CacheTTLSeconds) * time.Second
}

// OddsTimeout returns the feed request timeout as a duration.
func (c *Config) OddsTimeout() time.Duration {
	return time.Duration(c.OddsAPI.TimeoutSeconds) * time.Second
}
