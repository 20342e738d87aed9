package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/linkstats/internal/cache"
	"github.com/rshade/linkstats/internal/config"
)

// isolate points every config location at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvHome, dir)
	t.Setenv(config.EnvConfigPath, "")
	for _, key := range []string{
		"LINKSTATS_API_BASE_URL", "LINKSTATS_API_TIMEOUT", "LINKSTATS_CACHE_TTL",
		"LINKSTATS_CACHE_ENABLED", "LINKSTATS_CACHE_COALESCE", "LINKSTATS_LOGGING_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, config.DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, config.DefaultTimeout, cfg.API.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, cache.DefaultTTL, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Coalesce)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.RefreshInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	isolate(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := config.Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://stats.example.com/api
  timeout: 3s
cache:
  ttl: 90000
  coalesce: true
dashboard:
  profile_id: 4
logging:
  level: debug
`), 0600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://stats.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled, "unset keys keep defaults")
	assert.True(t, cfg.Cache.Coalesce)
	assert.Equal(t, 4, cfg.Dashboard.ProfileID)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LINKSTATS_API_BASE_URL", "http://10.0.0.1:8000/api")
	t.Setenv("LINKSTATS_CACHE_TTL", "2m")
	t.Setenv("LINKSTATS_CACHE_ENABLED", "false")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.1:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  ttl: soon\n"), 0600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.Default()
	cfg.API.BaseURL = "https://api.example.org"
	cfg.Cache.TTL = 45 * time.Second
	cfg.Dashboard.RefreshInterval = time.Minute
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ttl: 45s")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultConfigPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), config.DefaultConfigPath())

	t.Setenv(config.EnvConfigPath, "/etc/linkstats.yaml")
	assert.Equal(t, "/etc/linkstats.yaml", config.DefaultConfigPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "empty base url", mutate: func(c *config.Config) { c.API.BaseURL = "" }, wantErr: "base_url is required"},
		{name: "relative base url", mutate: func(c *config.Config) { c.API.BaseURL = "/api" }, wantErr: "absolute URL"},
		{name: "zero timeout", mutate: func(c *config.Config) { c.API.Timeout = 0 }, wantErr: "api.timeout"},
		{name: "negative rate", mutate: func(c *config.Config) { c.API.RequestsPerSecond = -1 }, wantErr: "requests_per_second"},
		{name: "ttl too small", mutate: func(c *config.Config) { c.Cache.TTL = time.Millisecond }, wantErr: "cache.ttl"},
		{
			name: "ttl ignored when disabled",
			mutate: func(c *config.Config) {
				c.Cache.Enabled = false
				c.Cache.TTL = 0
			},
		},
		{name: "profile id", mutate: func(c *config.Config) { c.Dashboard.ProfileID = 0 }, wantErr: "profile_id"},
		{name: "refresh", mutate: func(c *config.Config) { c.Dashboard.RefreshInterval = time.Millisecond }, wantErr: "refresh_interval"},
		{name: "level", mutate: func(c *config.Config) { c.Logging.Level = "chatty" }, wantErr: "logging.level"},
		{name: "format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "json", File: "/tmp/x.log"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "warn", got.Level)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, "/tmp/x.log", got.File)
}
