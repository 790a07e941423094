package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Registry   RegistryConfig
	Filesystem FilesystemConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// RegistryConfig holds component registry configuration.
// An empty Source starts the service with an empty catalog.
type RegistryConfig struct {
	Source           string        `envconfig:"REGISTRY_SOURCE" default:""`
	Timeout          time.Duration `envconfig:"REGISTRY_TIMEOUT" default:"30s"`
	RetryMax         int           `envconfig:"REGISTRY_RETRY_MAX" default:"3"`
	BreakerThreshold uint32        `envconfig:"REGISTRY_BREAKER_THRESHOLD" default:"5"`
	BreakerCooldown  time.Duration `envconfig:"REGISTRY_BREAKER_COOLDOWN" default:"30s"`
}

// FilesystemConfig holds filesystem tool defaults.
type FilesystemConfig struct {
	TreeDepth int `envconfig:"FS_TREE_DEPTH" default:"3"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Registry: RegistryConfig{
			Timeout:          30 * time.Second,
			RetryMax:         3,
			BreakerThreshold: 5,
			BreakerCooldown:  30 * time.Second,
		},
		Filesystem: FilesystemConfig{
			TreeDepth: 3,
		},
	}
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.Filesystem.TreeDepth < 0 {
		return fmt.Errorf("FS_TREE_DEPTH must be non-negative, got %d", c.Filesystem.TreeDepth)
	}
	if c.Registry.RetryMax < 0 {
		return fmt.Errorf("REGISTRY_RETRY_MAX must be non-negative, got %d", c.Registry.RetryMax)
	}
	if c.Registry.BreakerThreshold == 0 {
		return fmt.Errorf("REGISTRY_BREAKER_THRESHOLD must be positive")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive when rate limiting is enabled")
	}
	return nil
}
