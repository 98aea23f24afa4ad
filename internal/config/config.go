// Cloudcompass - Cloud Provider Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cloudcompass

// Package config defines and loads the Cloudcompass configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML
// file, then environment variables. Environment variables win.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/cloudcompass/internal/validation"
)

// Config is the root configuration for the service.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Enhancer EnhancerConfig `koanf:"enhancer"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// EnhancerConfig holds AI explanation enhancement settings.
// The feature is opt-in: without an API key and the enabled flag the
// service serves deterministic explanations only.
type EnhancerConfig struct {
	Enabled bool `koanf:"enabled"`

	// APIKey is the Gemini API credential. Never logged.
	APIKey string `koanf:"api_key"`

	Model             string        `koanf:"model"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for inconsistencies that would
// surface as confusing runtime failures. Unconditional constraints are
// expressed as validate tags; conditional ones (rate limiting, the
// enhancer) are checked by hand.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if c.Enhancer.Enabled {
		if c.Enhancer.APIKey == "" {
			return fmt.Errorf("enhancer.enabled is set but enhancer.api_key is empty")
		}
		if c.Enhancer.Timeout <= 0 {
			return fmt.Errorf("enhancer.timeout must be positive, got %s", c.Enhancer.Timeout)
		}
	}

	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
