// Package config loads the service configuration from SHOP_* environment
// variables and validates it.
//
// Variable names map onto nested keys by their first underscore:
// SHOP_DATABASE_DSN -> database.dsn, SHOP_LOGGING_SLOW_QUERY_THRESHOLD ->
// logging.slow_query_threshold.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHOP_"

type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
}

// RabbitMQConfig is optional: an empty URL disables domain events.
type RabbitMQConfig struct {
	URL string `koanf:"url"`
}

type LoggingConfig struct {
	Level              string        `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format             string        `koanf:"format" validate:"required,oneof=json console"`
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

var defaults = map[string]any{
	"primary.env":                  "development",
	"database.max_open_conns":      25,
	"database.max_idle_conns":      5,
	"database.conn_max_lifetime":   "30m",
	"logging.level":                "info",
	"logging.format":               "json",
	"logging.slow_query_threshold": "200ms",
}

// envKey turns SHOP_DATABASE_MAX_OPEN_CONNS into database.max_open_conns.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

// Load reads defaults then the environment. Callers wanting .env support
// load it into the process environment first.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
