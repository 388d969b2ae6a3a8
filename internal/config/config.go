// Package config provides typed application configuration loaded through
// viper with environment overrides.
package config

import (
	"time"

	"github.com/adlens/adlens/internal/core/store"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     store.Config    `mapstructure:"store"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ProviderConfig contains completion-provider settings. Temperatures are
// per-endpoint tuning constants, deliberately configurable.
type ProviderConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Model               string        `mapstructure:"model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	GenTemperature      float64       `mapstructure:"gen_temperature"`
	AnalysisTemperature float64       `mapstructure:"analysis_temperature"`
	MaxTokens           int           `mapstructure:"max_tokens"`
}

// RateLimitConfig contains admission-control settings.
type RateLimitConfig struct {
	Quota      int           `mapstructure:"quota"`
	Window     time.Duration `mapstructure:"window"`
	UpgradeURL string        `mapstructure:"upgrade_url"`
}

// CacheConfig contains response-cache TTL settings.
type CacheConfig struct {
	GenerationTTL time.Duration `mapstructure:"generation_ttl"`
	InspectionTTL time.Duration `mapstructure:"inspection_ttl"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
