package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

// EnvPrefix is stripped from environment variables; "__" separates levels,
// so VINGW_DECODER__PROVIDER sets decoder.provider.
const EnvPrefix = "VINGW_"

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Decoder  DecoderConfig  `koanf:"decoder"`
	Retry    RetryConfig    `koanf:"retry"`
	Cache    CacheConfig    `koanf:"cache"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// DecoderConfig selects the default provider and where each one lives.
// NinjasAPIKey may be empty: callers can then supply a key per request.
type DecoderConfig struct {
	Provider      string        `koanf:"provider" validate:"required,oneof=ninjas nhtsa"`
	NinjasBaseURL string        `koanf:"ninjas_base_url" validate:"required,url"`
	NinjasAPIKey  string        `koanf:"ninjas_api_key"`
	NHTSABaseURL  string        `koanf:"nhtsa_base_url" validate:"required,url"`
	ConnTimeout   time.Duration `koanf:"conn_timeout" validate:"required,gt=0"`
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries" validate:"min=1"`
}

// Budget is the worst case a decode spends across every attempt when each
// attempt may take perAttempt, backoff and jitter included.
func (r RetryConfig) Budget(perAttempt time.Duration) time.Duration {
	total := time.Duration(r.MaxRetries) * perAttempt
	for i := 0; i < r.MaxRetries-1; i++ {
		total += r.BaseDelay*time.Duration(1<<i) + r.BaseDelay/2
	}
	return total
}

// CacheConfig controls how long a successful lookup is served from the
// database instead of calling the decoder again. Zero disables caching.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type LoggerConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

type WorkerConfig struct {
	Interval  time.Duration `koanf:"interval" validate:"required,gt=0"`
	Retention time.Duration `koanf:"retention" validate:"required,gt=0"`
}

// Defaults are applied before the environment is read.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         "15s",
		"server.write_timeout":        "25s",
		"server.idle_timeout":         "60s",
		"server.request_timeout":      "20s",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",
		"decoder.provider":            "nhtsa",
		"decoder.ninjas_base_url":     "https://api.api-ninjas.com",
		"decoder.nhtsa_base_url":      "https://vpic.nhtsa.dot.gov",
		"decoder.conn_timeout":        "5s",
		"retry.base_delay":            "500ms",
		"retry.max_retries":           3,
		"cache.ttl":                   "24h",
		"logger.level":                "info",
		"logger.format":               "text",
		"worker.interval":             "1h",
		"worker.retention":            "720h",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		logger.Error("failed to load default config", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	budget := mainConfig.Retry.Budget(mainConfig.Decoder.ConnTimeout)
	if mainConfig.Server.RequestTimeout <= budget {
		err := fmt.Errorf("server.request_timeout %s must exceed the decoder retry budget %s", mainConfig.Server.RequestTimeout, budget)
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
