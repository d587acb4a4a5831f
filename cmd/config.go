package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment; see LoadConfig.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"transport_orders"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// RulesDir replaces the embedded rule data with a directory of the same
	// layout; it is re-read on RulesReloadSchedule.
	RulesDir            string `envconfig:"RULES_DIR"`
	RulesReloadSchedule string `envconfig:"RULES_RELOAD_SCHEDULE" default:"@every 1m"`

	ExchangeEnvironment   string        `envconfig:"EXCHANGE_ENVIRONMENT" default:"test"`
	ExchangeBaseURL       string        `envconfig:"EXCHANGE_BASE_URL"`
	ExchangeUsername      string        `envconfig:"EXCHANGE_USERNAME"`
	ExchangeCompanyID     string        `envconfig:"EXCHANGE_COMPANY_ID"`
	ExchangePassword      string        `envconfig:"EXCHANGE_PASSWORD"`
	ExchangeTimeout       time.Duration `envconfig:"EXCHANGE_TIMEOUT" default:"30s"`
	ExchangeRatePerSecond float64       `envconfig:"EXCHANGE_RATE_PER_SECOND" default:"0"`

	DispatchSchedule    string `envconfig:"DISPATCH_SCHEDULE" default:"*/30 * * * * *"`
	DispatchBatchSize   int    `envconfig:"DISPATCH_BATCH_SIZE" default:"100"`
	DispatchMaxAttempts int    `envconfig:"DISPATCH_MAX_ATTEMPTS" default:"5"`

	RedisAddr          string        `envconfig:"REDIS_ADDR"`
	ValidationCacheTTL time.Duration `envconfig:"VALIDATION_CACHE_TTL" default:"1h"`
}

// LoadConfig reads the environment, after loading .env when one exists.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ExchangeConfigured reports whether any exchange credential is set. Partial
// credentials count as configured so the client constructor reports them.
func (c Config) ExchangeConfigured() bool {
	return c.ExchangeUsername != "" || c.ExchangeCompanyID != "" || c.ExchangePassword != ""
}

// SlogLevel falls back to info for an unknown LOG_LEVEL.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}
