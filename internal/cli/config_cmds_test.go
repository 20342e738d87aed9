package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/linkstats/internal/config"
)

// TestConfigInit verifies that "config init" writes defaults and refuses to
// overwrite without --force.
func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, configPath)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Cache.TTL, cfg.Cache.TTL)

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

// TestConfigInit_BrokenExistingFile verifies init --force does not need to
// parse the file it replaces.
func TestConfigInit_BrokenExistingFile(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("api: [unterminated"), 0o600))

	_, _, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)

	_, err = config.Load(configPath)
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	configPath := filepath.Join(t.TempDir(), "nested", "linkstats.yaml")

	_, _, err := execute(t, "config", "init", "--config", configPath)
	require.NoError(t, err)
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr)
}

func TestConfigShow(t *testing.T) {
	setupCLITest(t)
	t.Setenv("LINKSTATS_CACHE_TTL", "5m")

	t.Run("yaml", func(t *testing.T) {
		out, _, err := execute(t, "config", "show", "--base-url", "http://analytics.internal/api")
		require.NoError(t, err)
		assert.Contains(t, out, "ttl: 5m0s")
		assert.Contains(t, out, "base_url: http://analytics.internal/api")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "config", "show", "--output", "json", "--no-cache")
		require.NoError(t, err)
		assert.Contains(t, out, `"ttl": "5m0s"`)
		assert.Contains(t, out, `"enabled": false`)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		setupCLITest(t)
		out, _, err := execute(t, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "Cache: enabled, TTL 1m")
		assert.Contains(t, out, "Refresh interval: 30s")
	})

	t.Run("invalid file reports every problem", func(t *testing.T) {
		home := setupCLITest(t)
		content := "api:\n  base_url: not-a-url\ncache:\n  ttl: 100ms\ndashboard:\n  profile_id: 0\n"
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

		_, _, err := execute(t, "config", "validate")
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "api.base_url")
		assert.Contains(t, err.Error(), "cache.ttl")
		assert.Contains(t, err.Error(), "dashboard.profile_id")
	})

	t.Run("invalid config blocks analytics commands", func(t *testing.T) {
		home := setupCLITest(t)
		content := "dashboard:\n  refresh_interval: 10ms\n"
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0o600))

		_, _, err := execute(t, "dashboard")
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing explicit config", func(t *testing.T) {
		setupCLITest(t)
		_, _, err := execute(t, "config", "validate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
