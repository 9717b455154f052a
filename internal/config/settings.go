// Package config loads process settings from the environment and network
// topologies from YAML files.
package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable read into Settings.
const EnvPrefix = "NEURALNET"

// Settings are process-wide knobs read from NEURALNET_* variables.
type Settings struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	// Seed for weight initialization and shuffling; 0 seeds from the clock.
	Seed int64 `envconfig:"SEED" default:"0"`
	// Workers for parallel matrix products; 0 picks the physical core count.
	Workers int `envconfig:"WORKERS" default:"0"`
}

// LoadSettings reads Settings from the environment. When envFile is not
// empty its variables are loaded first; variables already set in the
// environment win. A missing envFile is not an error.
func LoadSettings(envFile string) (Settings, error) {
	const op = "config.load_settings"

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, &OpError{Op: op, Kind: KindInvalidConfig, Path: envFile, Err: err}
		}
	}

	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return Settings{}, &OpError{Op: op, Kind: KindInvalidConfig, Err: err}
	}
	if s.Workers < 0 {
		return Settings{}, invalid(op, "", "workers must not be negative, got %d", s.Workers)
	}
	return s, nil
}
