// Package config defines the application configuration structures.  No I/O
// or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSAllowedOrigins lists origins permitted to call the API from a
	// browser.  "*" allows every origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// RateLimitPerSecond is the sustained per-client request rate;
	// RateLimitBurst is the burst allowance above it.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
}

// ScoringConfig holds complexity-scoring tunables.
type ScoringConfig struct {
	// Diagnostics enables per-atom contribution records in responses and
	// CLI output.
	Diagnostics bool `mapstructure:"diagnostics"`

	// MaxAtoms caps the heavy-atom count of a molecule accepted for
	// scoring.  Zero means no cap.
	MaxAtoms int `mapstructure:"max_atoms"`
}

// MetricsConfig holds Prometheus exposure tunables.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// Config is the root configuration structure.  Every component reads its
// settings from the relevant sub-struct.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Scoring ScoringConfig     `mapstructure:"scoring"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Log     logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully populated Config.  It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodySize < 1 {
		return fmt.Errorf("config: server.max_body_size must be positive, got %d", c.Server.MaxBodySize)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitPerSecond <= 0 {
		return fmt.Errorf("config: server.rate_limit_per_second must be positive, got %g", c.Server.RateLimitPerSecond)
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("config: server.rate_limit_burst must be at least 1, got %d", c.Server.RateLimitBurst)
	}

	if c.Scoring.MaxAtoms < 0 {
		return fmt.Errorf("config: scoring.max_atoms must not be negative, got %d", c.Scoring.MaxAtoms)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
