// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// ViewTTL bounds how long an idle page view keeps its theme and reveal state.
	ViewTTL time.Duration `env:"VIEW_TTL" envDefault:"2h"`

	// MaxViews caps how many page views are held in memory at once.
	MaxViews int `env:"MAX_VIEWS" envDefault:"10000"`

	// MetricsDB is the sqlite path for page metrics. Empty disables metrics.
	MetricsDB        string        `env:"METRICS_DB"`
	MetricsRetention time.Duration `env:"METRICS_RETENTION" envDefault:"8760h"`
	StatsEnabled     bool          `env:"STATS_ENABLED" envDefault:"false"`
}

// Load parses the environment, after any .env file has been applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ViewTTL <= 0 {
		return Config{}, fmt.Errorf("VIEW_TTL must be positive, got %s", cfg.ViewTTL)
	}
	if cfg.MaxViews <= 0 {
		return Config{}, fmt.Errorf("MAX_VIEWS must be positive, got %d", cfg.MaxViews)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
