// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings.
type Config struct {
	Port      string `env:"CHOREBOARD_PORT" envDefault:"8080"`
	DBPath    string `env:"CHOREBOARD_DB_PATH" envDefault:"choreboard.db"`
	MediaDir  string `env:"CHOREBOARD_MEDIA_DIR" envDefault:"media"`
	Timezone  string `env:"CHOREBOARD_TZ" envDefault:""`
	LogLevel  string `env:"CHOREBOARD_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CHOREBOARD_LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone, defaulting to the system
// local zone. All rollover and bonus arithmetic runs in this location.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
