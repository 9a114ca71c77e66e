package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "BOTTCHER"

// newViper builds a pre-configured Viper instance: YAML file type, BOTTCHER_
// env prefix, automatic env binding, and a key replacer mapping "." to "_"
// so that nested keys like "server.port" resolve to "BOTTCHER_SERVER_PORT".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal only sees keys viper knows about, so env-only keys must be
	// bound explicitly for LoadFromEnv to work without a config file.
	for _, key := range []string{
		"server.host", "server.port",
		"server.read_timeout", "server.write_timeout", "server.idle_timeout",
		"server.max_body_size", "server.shutdown_timeout",
		"server.cors_allowed_origins",
		"server.rate_limit_per_second", "server.rate_limit_burst",
		"scoring.diagnostics", "scoring.max_atoms",
		"metrics.enabled", "metrics.namespace",
		"metrics.enable_process_metrics", "metrics.enable_go_metrics",
		"log.level", "log.format", "log.output_paths", "log.error_output_paths",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the YAML file at configPath, merges BOTTCHER_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from BOTTCHER_* environment variables
// and defaults, with no config file.  Preferred for containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config whenever the file changes on disk.  Intended for hot-reloading
// non-critical settings such as log level and scoring diagnostics; callers
// decide which subset is safe to apply at runtime.
//
// Watch is non-blocking; viper manages the background goroutine.  A change
// that fails to parse or validate is dropped without invoking onChange so
// the application never enters a broken state.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; errors are ignored here, callers should Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on any error.  For use in main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
