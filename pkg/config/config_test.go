package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9108", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data/g6_data", cfg.DataDir)
	assert.Equal(t, 60*time.Second, cfg.RunInterval)
	assert.True(t, cfg.MarketHoursOnly)
	assert.Equal(t, 10, cfg.ProviderRateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("G6_DATA_DIR", "/tmp/g6")
	t.Setenv("G6_RUN_INTERVAL", "30s")
	t.Setenv("G6_MARKET_HOURS_ONLY", "false")
	t.Setenv("G6_PROVIDER_RATE_LIMIT", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/g6", cfg.DataDir)
	assert.Equal(t, 30*time.Second, cfg.RunInterval)
	assert.False(t, cfg.MarketHoursOnly)
	assert.Equal(t, 5, cfg.ProviderRateLimit)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ENV", "sandbox")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFallsBackOnUnparsableValues(t *testing.T) {
	t.Setenv("G6_RUN_INTERVAL", "soon")
	t.Setenv("G6_PROVIDER_RATE_LIMIT", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.RunInterval)
	assert.Equal(t, 10, cfg.ProviderRateLimit)
}

func TestValidateInterval(t *testing.T) {
	t.Setenv("G6_RUN_INTERVAL", "500ms")
	_, err := Load()
	assert.Error(t, err)
}
