// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full process configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	OTelHost        string        `env:"OTEL_HOST"`
	OTelProbability float64       `env:"OTEL_PROBABILITY" envDefault:"1.0"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisChannel    string        `env:"REDIS_CHANNEL" envDefault:"callorder.events"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// Prefix is prepended to every variable name.
const Prefix = "CALLORDER_"

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.OTelProbability < 0 || cfg.OTelProbability > 1 {
		return Config{}, fmt.Errorf("parse env: %sOTEL_PROBABILITY must be within [0,1], got %v", Prefix, cfg.OTelProbability)
	}
	return cfg, nil
}
