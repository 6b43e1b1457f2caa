// Package config loads callflow.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/meikuraledutech/callflow"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the configuration shared by the server and the CLI.
type Config struct {
	LogLevel string           `yaml:"log_level,omitempty"`
	Compiler callflow.Options `yaml:"compiler,omitempty"`
	Server   ServerConfig     `yaml:"server,omitempty"`
	Database DatabaseConfig   `yaml:"database,omitempty"`
	Redis    RedisConfig      `yaml:"redis,omitempty"`
	Renderer RendererConfig   `yaml:"renderer,omitempty"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	// Addr is the listen address. Default: ":3000"
	Addr string `yaml:"addr,omitempty"`
}

// DatabaseConfig configures graph persistence. An empty URL disables the store.
type DatabaseConfig struct {
	URL string `yaml:"url,omitempty"`
}

// RedisConfig configures the render cache. An empty URL disables the cache.
type RedisConfig struct {
	URL string `yaml:"url,omitempty"`

	// TTL is how long rendered images stay cached.
	// Format: Go duration string (e.g., "1h")
	// Default: 24h
	TTL string `yaml:"ttl,omitempty"`
}

// RendererConfig configures the Graphviz renderer.
type RendererConfig struct {
	// Binary is the dot executable. Default: "dot"
	Binary string `yaml:"binary,omitempty"`

	// Timeout bounds a single render.
	// Format: Go duration string (e.g., "30s")
	// Default: 30s
	Timeout string `yaml:"timeout,omitempty"`
}

// Environment variables that override file values.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvRedisURL    = "REDIS_URL"
	EnvAddr        = "CALLFLOW_ADDR"
	EnvLogLevel    = "CALLFLOW_LOG_LEVEL"
	EnvDotBinary   = "CALLFLOW_DOT"
)

// Load reads the YAML file at path and applies environment overrides.
// An empty path yields the defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDatabaseURL); ok {
		c.Database.URL = v
	}
	if v, ok := lookup(EnvRedisURL); ok {
		c.Redis.URL = v
	}
	if v, ok := lookup(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvDotBinary); ok {
		c.Renderer.Binary = v
	}
}

// Validate checks enum and duration fields.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Compiler.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level: %w", err))
		}
	}
	if c.Redis.TTL != "" {
		if _, err := time.ParseDuration(c.Redis.TTL); err != nil {
			errs = append(errs, fmt.Errorf("redis.ttl: %w", err))
		}
	}
	if c.Renderer.Timeout != "" {
		if _, err := time.ParseDuration(c.Renderer.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("renderer.timeout: %w", err))
		}
	}
	return errors.Join(errs...)
}

// GetAddr returns the listen address, defaulting to ":3000".
func (s ServerConfig) GetAddr() string {
	if s.Addr == "" {
		return ":3000"
	}
	return s.Addr
}

// GetTTL parses the TTL string and returns a duration.
// Returns the default value if not set or invalid.
func (r RedisConfig) GetTTL() time.Duration {
	if r.TTL == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// GetTimeout parses the timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r RendererConfig) GetTimeout() time.Duration {
	if r.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetLogLevel returns the parsed log level, defaulting to info.
func (c *Config) GetLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// NewLogger returns a logrus logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.GetLogLevel())
	return logger
}
