// Package config loads the arena's settings from the environment and the
// command line.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/monsterarena/internal/game"
	"github.com/samdwyer/monsterarena/internal/telemetry"
)

// ErrBadArgument is returned for a command-line argument that is neither
// "debug" nor a seed.
var ErrBadArgument = errors.New("expected \"debug\" or an integer seed")

// Config holds every setting of an arena run.
type Config struct {
	// Seed fixes the random source; 0 picks one at random.
	Seed  int64 `env:"ARENA_SEED"`
	Debug bool  `env:"ARENA_DEBUG"`
	// DataFile is an action and monster file to load at startup instead of
	// the built-in catalog.
	DataFile  string    `env:"ARENA_CONFIG"`
	LogLevel  string    `env:"ARENA_LOG_LEVEL" envDefault:"warn"`
	TUI       bool      `env:"ARENA_TUI"`
	Telemetry Telemetry `envPrefix:"ARENA_TELEMETRY_"`
}

// Telemetry configures trace export.
type Telemetry struct {
	Enabled  bool   `env:"ENABLED"`
	Endpoint string `env:"ENDPOINT" envDefault:"https://api.honeycomb.io"`
	APIKey   string `env:"API_KEY"`
	Dataset  string `env:"DATASET" envDefault:"monsterarena"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyArgs overrides the mode from positional arguments: "debug" turns on
// debug mode and a number sets the seed.
func (c *Config) ApplyArgs(args []string) error {
	for _, arg := range args {
		if arg == "debug" {
			c.Debug = true
			continue
		}
		seed, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadArgument, arg)
		}
		c.Seed = seed
	}
	return nil
}

// Game returns the competition settings.
func (c Config) Game() game.Config {
	return game.Config{Seed: c.Seed, Debug: c.Debug}
}

// TelemetryOptions returns the exporter settings.
func (c Config) TelemetryOptions() telemetry.Options {
	return telemetry.Options{
		Endpoint: c.Telemetry.Endpoint,
		APIKey:   c.Telemetry.APIKey,
		Dataset:  c.Telemetry.Dataset,
	}
}
