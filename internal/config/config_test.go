package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validConfigPath     = "testdata/valid_config.yaml"
	expansionConfigPath = "testdata/expansion_config.yaml"
)

func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gridiron-edge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.InDelta(t, 20.0, cfg.Rating.KFactor, 1e-9)
	assert.InDelta(t, 1500.0, cfg.Rating.BaseRating, 1e-9)
	assert.True(t, cfg.Rating.MovDampen)
	assert.Equal(t, []string{"h2h", "spreads", "totals"}, cfg.Betting.Markets)
	assert.Equal(t, "americanfootball_nfl", cfg.OddsAPI.SportKey)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load("testdata/nonexistent_config.yaml")
	assert.Error(t, err)
}

func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults("testdata/nonexistent_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "gridiron-edge", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.InDelta(t, 37.5, cfg.Rating.HomeAdvantage, 1e-9)
	assert.InDelta(t, 0.7, cfg.Rating.MovExponent, 1e-9)
	assert.Equal(t, 300, cfg.OddsAPI.CacheTTLSeconds)
	assert.Equal(t, "*/15 * * * *", cfg.Sync.Schedule)
}

func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	os.Setenv("TEST_ODDS_API_KEY", "expanded-secret")
	defer os.Unsetenv("TEST_ODDS_API_KEY")

	cfg, err := Load(expansionConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "expanded-secret", cfg.OddsAPI.APIKey)
}

func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	assert.NoError(t, Validate(cfg))
}

func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.App.Environment = "invalid"
	assert.Error(t, Validate(cfg))
}

func TestValidateInvalidLogLevel(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))
}

func TestValidateMarkets(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.Betting.Markets = []string{"h2h"}
	assert.NoError(t, Validate(cfg))

	cfg.Betting.Markets = []string{"h2h", "parlays"}
	assert.Error(t, Validate(cfg))

	cfg.Betting.Markets = []string{}
	assert.Error(t, Validate(cfg))
}

func TestValidateRatingBounds(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.Rating.RegressionFactor = 1.5
	assert.Error(t, Validate(cfg))

	cfg.Rating.RegressionFactor = 0.2
	cfg.Rating.KFactor = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateCrossFieldHomeAdvantageUnits(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	// 400 rating points on a 25-per-point scale is a 16 point edge.
	cfg.Rating.HomeAdvantage = 400
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home_advantage")
}

func TestValidateProductionRequiresRealAPIKey(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.OddsAPI.APIKey = ""
	assert.Error(t, Validate(cfg))

	cfg.OddsAPI.APIKey = "test-key-123"
	assert.Error(t, Validate(cfg))

	cfg.OddsAPI.APIKey = "a9f3c1e07b6d"
	assert.NoError(t, Validate(cfg))
}

func TestEngineConfig(t *testing.T) {
	cfg, err := Load(validConfigPath)
	require.NoError(t, err)

	engineCfg := cfg.EngineConfig()
	assert.InDelta(t, cfg.Rating.KFactor, engineCfg.KFactor, 1e-9)
	assert.InDelta(t, cfg.Rating.SpreadFactor, engineCfg.SpreadFactor, 1e-9)
	assert.Equal(t, cfg.Rating.MovDampen, engineCfg.MovDampen)
}

func TestEnvironmentChecks(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsStaging())
}
