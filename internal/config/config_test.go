package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "pali.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "3s"
data:
  dir: "`+dir+`"
cache:
  size: 10
log:
  level: "debug"
  format: "console"
cors:
  allowed_origins: "https://a.example, https://b.example"
`)
	t.Setenv(PathEnv, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, 10, cfg.Cache.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.Origins())
	assert.Equal(t, []string{"GET", "OPTIONS"}, cfg.CORS.Methods())
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "server:\n  port: 9090\n")
	t.Setenv(PathEnv, path)
	t.Setenv("PALI_SERVER_PORT", "7070")
	t.Setenv("PALI_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 4096, cfg.Cache.Size)
	assert.Empty(t, cfg.Data.Dir)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins())
}

func TestLoad_DefaultFile(t *testing.T) {
	t.Setenv(PathEnv, "")
	dir := t.TempDir()
	writeYAML(t, dir, "cache:\n  size: 7\n")
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Cache.Size)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "log:\n  level: trace\n")
	t.Setenv(PathEnv, path)
	_, err := Load()
	assert.ErrorContains(t, err, "validate")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
			Cache:  CacheConfig{Size: 1},
			Log:    LogConfig{Level: "info", Format: "json"},
			CORS:   CORSConfig{AllowedOrigins: "*"},
		}
	}
	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := map[string]func(*Config){
		"port":       func(c *Config) { c.Server.Port = 70000 },
		"shutdown":   func(c *Config) { c.Server.ShutdownTimeout = 0 },
		"cache":      func(c *Config) { c.Cache.Size = -1 },
		"data dir":   func(c *Config) { c.Data.Dir = filepath.Join(t.TempDir(), "missing") },
		"log level":  func(c *Config) { c.Log.Level = "trace" },
		"log format": func(c *Config) { c.Log.Format = "text" },
		"cors":       func(c *Config) { c.CORS.AllowedOrigins = " , " },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
