package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// PathEnv names the variable holding the config file path.
	PathEnv = "PALI_CONFIG"
	// DefaultPath is read when PathEnv is unset and the file exists.
	DefaultPath = "pali.yaml"
)

// Load builds the configuration from the file named by PALI_CONFIG (or
// pali.yaml in the working directory), PALI_* environment variables and the
// env-default tags, in increasing order of precedence: defaults, file,
// environment. A missing pali.yaml is not an error; a missing PALI_CONFIG
// file is.
func Load() (*Config, error) {
	path, required := os.Getenv(PathEnv), true
	if path == "" {
		path, required = DefaultPath, false
	}
	cfg, err := read(path, required)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

func read(path string, required bool) (*Config, error) {
	var cfg Config
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config: %w", err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}
	return &cfg, nil
}
