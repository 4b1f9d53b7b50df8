package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/DanielPopoola/vin-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VINGW_DATABASE__USER", "vingw")
	t.Setenv("VINGW_DATABASE__PASSWORD", "secret")
	t.Setenv("VINGW_DATABASE__NAME", "vingw")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "nhtsa", cfg.Decoder.Provider)
	assert.Equal(t, "https://vpic.nhtsa.dot.gov", cfg.Decoder.NHTSABaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Less(t, cfg.Retry.Budget(cfg.Decoder.ConnTimeout), cfg.Server.RequestTimeout)
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.Server.RequestTimeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VINGW_DECODER__PROVIDER", "ninjas")
	t.Setenv("VINGW_DECODER__NINJAS_API_KEY", "abc123")
	t.Setenv("VINGW_DATABASE__PORT", "6543")
	t.Setenv("VINGW_CACHE__TTL", "0s")
	t.Setenv("VINGW_SERVER__REQUEST_TIMEOUT", "5s")
	t.Setenv("VINGW_DECODER__CONN_TIMEOUT", "500ms")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "ninjas", cfg.Decoder.Provider)
	assert.Equal(t, "abc123", cfg.Decoder.NinjasAPIKey)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Zero(t, cfg.Cache.TTL)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("missing database credentials", func(t *testing.T) {
		t.Setenv("VINGW_DATABASE__USER", "")
		t.Setenv("VINGW_DATABASE__PASSWORD", "")
		t.Setenv("VINGW_DATABASE__NAME", "")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("VINGW_DECODER__PROVIDER", "carfax")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("request timeout inside retry budget", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("VINGW_SERVER__REQUEST_TIMEOUT", "10s")
		t.Setenv("VINGW_DECODER__CONN_TIMEOUT", "8s")

		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "retry budget")
	})

	t.Run("negative worker interval", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("VINGW_WORKER__INTERVAL", "-1m")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("zero retries", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("VINGW_RETRY__MAX_RETRIES", "0")

		_, err := config.LoadConfig()
		assert.Error(t, err)
	})
}

func TestRetryConfig_Budget(t *testing.T) {
	r := config.RetryConfig{BaseDelay: 500 * time.Millisecond, MaxRetries: 3}

	// 3 attempts, then backoffs of 500ms and 1s each with up to 250ms jitter.
	assert.Equal(t, 15*time.Second+2*time.Second, r.Budget(5*time.Second))
	assert.Equal(t, time.Second, config.RetryConfig{MaxRetries: 1}.Budget(time.Second))
}

func TestLoggerConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, config.LoggerConfig{Level: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, config.LoggerConfig{Level: "warn"}.SlogLevel())
	assert.Equal(t, slog.LevelError, config.LoggerConfig{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, config.LoggerConfig{}.SlogLevel())
	assert.NotNil(t, config.LoggerConfig{Format: "json"}.NewLogger())
}
