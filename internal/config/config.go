// Package config loads CLI configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds svginline CLI configuration.
type Config struct {
	Inline  InlineConfig
	Fetch   FetchConfig
	Logging LogConfig
}

// InlineConfig controls placeholder discovery and transformation.
type InlineConfig struct {
	Selector     string `envconfig:"SELECTOR" default:"img[data-src$='.svg']"`
	LoadingClass string `envconfig:"LOADING_CLASS" default:"svg-loading"`
	Strict       bool   `envconfig:"STRICT" default:"false"`
}

// FetchConfig controls the HTTP client.
type FetchConfig struct {
	BaseURL           string  `envconfig:"BASE_URL" default:""`
	TimeoutSeconds    int     `envconfig:"TIMEOUT_SECONDS" default:"30"`
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from SVGINLINE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("svginline", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns
// the defaults.
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
		Inline: InlineConfig{
			Selector:     "img[data-src$='.svg']",
			LoadingClass: "svg-loading",
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 30,
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}
