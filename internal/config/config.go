// Package config loads, validates and persists linkstats configuration.
//
// Configuration is read from ~/.linkstats/config.yaml (or the path given with
// --config / LINKSTATS_CONFIG) and overridden by LINKSTATS_* environment
// variables, e.g. LINKSTATS_API_BASE_URL or LINKSTATS_CACHE_TTL.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rshade/linkstats/internal/cache"
)

// Defaults.
const (
	DefaultBaseURL         = "http://localhost:8000/api"
	DefaultTimeout         = 10 * time.Second
	DefaultProfileID       = 1
	DefaultRefreshInterval = 30 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"

	// MinRefreshInterval keeps watch mode from hammering the backend.
	MinRefreshInterval = time.Second

	configDirName  = ".linkstats"
	configFileName = "config.yaml"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "LINKSTATS_CONFIG"
	// EnvHome overrides the ~/.linkstats directory.
	EnvHome = "LINKSTATS_HOME"
	// envPrefix is the prefix for per-key environment overrides.
	envPrefix = "LINKSTATS"
)

// Config is the full linkstats configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// APIConfig controls how the analytics backend is reached.
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	SkipVersionCheck  bool          `mapstructure:"skip_version_check"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	// Coalesce shares one in-flight fetch between concurrent identical misses.
	Coalesce bool `mapstructure:"coalesce"`
}

// DashboardConfig holds dashboard defaults.
type DashboardConfig struct {
	ProfileID       int           `mapstructure:"profile_id"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Default returns a configuration populated with defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     cache.DefaultTTL,
		},
		Dashboard: DashboardConfig{
			ProfileID:       DefaultProfileID,
			RefreshInterval: DefaultRefreshInterval,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ConfigDir returns the linkstats home directory.
//
//nolint:revive // ConfigDir reads better than Dir at call sites.
func ConfigDir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

// DefaultConfigPath returns the config file path used when none is given.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), configFileName)
}
