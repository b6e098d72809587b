package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings for fixtaskdef.
// The fields removed from the descriptor and the variable it corrects
// are fixed in package taskdef and deliberately absent here.
type Config struct {
	// Input is the descriptor read from disk
	Input string `yaml:"input"`

	// Output is where the normalized descriptor is written
	Output string `yaml:"output"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log encoding on stderr (text, json)
	LogFormat string `yaml:"log_format"`
}

// LoadConfig builds the configuration from defaults, the YAML file at path
// and environment overrides, then validates the result.
//
// An empty path means DefaultConfigFile in the working directory, which is
// optional. An explicit path must exist.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Missing default config file is not an error
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
