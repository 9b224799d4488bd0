package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for confpatch
type Config struct {
	// SettingsFile is the application settings file holding model.* keys
	SettingsFile string `env:"CONFPATCH_SETTINGS"`

	// ConfDir overrides HADOOP_CONF_DIR when set
	ConfDir string `env:"CONFPATCH_CONF_DIR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MetricsFile enables prometheus textfile output when set
	MetricsFile string `env:"CONFPATCH_METRICS_FILE"`

	// Redis configuration for the export sink
	Redis RedisConfig
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password    string        `env:"REDIS_PASS"`
	DB          int           `env:"REDIS_DB" envDefault:"0"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
}

// Load reads configuration from environment variables, then applies the
// non-zero fields of overrides on top.
func Load(overrides Config) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := mergo.Merge(cfg, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge flag overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("%w: %s (must be debug, info, warn, or error)", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidRedisConfig)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("%w: db must not be negative", ErrInvalidRedisConfig)
	}

	return nil
}
