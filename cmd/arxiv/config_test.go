package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("ARXIV_CACHE", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ledger.db"), cfg.Ledger.Path)
	assert.Equal(t, 4096, cfg.Ledger.CacheSize)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 50.0, cfg.Server.RateLimit)
	assert.Equal(t, 100, cfg.Server.Burst)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("ARXIV_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("ARXIV_LEDGER_PATH", filepath.Join(dir, "custom.db"))
	t.Setenv("ARXIV_LOGGING_LEVEL", "debug")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, filepath.Join(dir, "custom.db"), cfg.Ledger.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "arxiv.yaml")
	err := os.WriteFile(file, []byte(`
ledger:
  path: /tmp/stamps.db
  cache_size: 16
server:
  addr: ":7070"
  rate_limit: 2.5
  burst: 5
  write_timeout: 30s
logging:
  format: json
`), 0o644)
	require.NoError(t, err)

	cfg, err := loadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/stamps.db", cfg.Ledger.Path)
	assert.Equal(t, 16, cfg.Ledger.CacheSize)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 2.5, cfg.Server.RateLimit)
	assert.Equal(t, 5, cfg.Server.Burst)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Ledger:  LedgerConfig{Path: "ledger.db", CacheSize: 8},
			Server:  ServerConfig{Addr: ":8080", RateLimit: 1, Burst: 1},
			Logging: LoggingConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no rate limit needs no burst", mutate: func(c *Config) { c.Server.RateLimit = 0; c.Server.Burst = 0 }},
		{name: "empty ledger path", mutate: func(c *Config) { c.Ledger.Path = "" }, wantErr: "ledger.path"},
		{name: "negative cache", mutate: func(c *Config) { c.Ledger.CacheSize = -1 }, wantErr: "ledger.cache_size"},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "server.addr"},
		{name: "negative rate", mutate: func(c *Config) { c.Server.RateLimit = -1 }, wantErr: "server.rate_limit"},
		{name: "zero burst", mutate: func(c *Config) { c.Server.Burst = 0 }, wantErr: "server.burst"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Format: "json"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger.path")
	assert.Contains(t, err.Error(), "server.addr")
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
