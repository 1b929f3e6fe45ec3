package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the arxiv command.
type Config struct {
	// Ledger contains stamp ledger settings.
	Ledger LedgerConfig `mapstructure:"ledger"`
	// Server contains settings for the serve command.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
}

// LedgerConfig holds stamp ledger configuration.
type LedgerConfig struct {
	// Path is the SQLite database file (default: ~/.cache/arxiv/ledger.db).
	Path string `mapstructure:"path"`
	// CacheSize bounds the in-memory lookup cache.
	CacheSize int `mapstructure:"cache_size"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	// Addr is the listen address (default: :8080).
	Addr string `mapstructure:"addr"`
	// RateLimit is the sustained number of requests per second; zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	// Burst is the maximum request burst.
	Burst int `mapstructure:"burst"`
	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error).
	Level string `mapstructure:"level"`
	// Format is the output format (json, console).
	Format string `mapstructure:"format"`
}

// loadConfig reads configuration from defaults, an optional arxiv.yaml and
// ARXIV_* environment variables, in increasing order of precedence.
// A non-empty file must exist.
func loadConfig(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ARXIV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("arxiv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "arxiv"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ledger.path", defaultLedgerPath())
	v.SetDefault("ledger.cache_size", 4096)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.burst", 100)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// defaultLedgerPath keeps the historical ARXIV_CACHE directory working.
func defaultLedgerPath() string {
	dir := os.Getenv("ARXIV_CACHE")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache", "arxiv")
	}
	return filepath.Join(dir, "ledger.db")
}

// Validate checks the configuration for values the command cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Ledger.Path == "" {
		errs = append(errs, errors.New("ledger.path is required"))
	}
	if c.Ledger.CacheSize < 0 {
		errs = append(errs, errors.New("ledger.cache_size must not be negative"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must not be negative"))
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		errs = append(errs, errors.New("server.burst must be at least 1 when rate limiting"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "pretty":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	return errors.Join(errs...)
}
