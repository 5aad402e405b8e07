package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %v)", c.Server.ShutdownTimeout)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must be >= 0 (got %d)", c.Cache.Size)
	}
	if c.Data.Dir != "" {
		fi, err := os.Stat(c.Data.Dir)
		if err != nil {
			return fmt.Errorf("data.dir: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("data.dir %s is not a directory", c.Data.Dir)
		}
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if len(c.CORS.Origins()) == 0 {
		return fmt.Errorf("cors.allowed_origins must not be empty")
	}
	return nil
}

func (l LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}
