// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: pkg/testutil
// PURPOSE: Test config defaults, file and env layering and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every ideaprov directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	return testutil.NewTestEnvironment(t).Root
}

func TestLoad_Defaults(t *testing.T) {
	tmp := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	p := cfg.Plugins
	assert.Equal(t, "https://plugins.jetbrains.com/pluginManager/", p.ManagerURL)
	assert.Equal(t, filepath.Join(tmp, "cache", "downloads"), p.DownloadCache)
	assert.Equal(t, 3*time.Second, p.HeadTimeout)
	assert.Equal(t, 20*time.Second, p.DownloadTimeout)
	assert.Equal(t, 3, p.Attempts)
	assert.Equal(t, 5*time.Second, p.RetryDelay)
	assert.Equal(t, "ideaprov", p.UserAgent)
}

func TestLoad_Layering(t *testing.T) {
	tmp := isolate(t)

	configDir := filepath.Join(tmp, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`
[plugins]
manager_url = "https://mirror.example.com/pluginManager/"
attempts = 5
download_cache = "/srv/cache"
`), 0644))

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://mirror.example.com/pluginManager/", cfg.Plugins.ManagerURL)
		assert.Equal(t, 5, cfg.Plugins.Attempts)
		assert.Equal(t, "/srv/cache", cfg.Plugins.DownloadCache)
		assert.Equal(t, 3*time.Second, cfg.Plugins.HeadTimeout)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("IDEAPROV_PLUGINS__ATTEMPTS", "7")
		t.Setenv("IDEAPROV_PLUGINS__RETRY_DELAY", "250ms")

		cfg, err := Load("", nil)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Plugins.Attempts)
		assert.Equal(t, 250*time.Millisecond, cfg.Plugins.RetryDelay)
		assert.Equal(t, "/srv/cache", cfg.Plugins.DownloadCache)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("IDEAPROV_PLUGINS__ATTEMPTS", "7")

		cfg, err := Load("", map[string]interface{}{
			"plugins.attempts":       2,
			"plugins.download_cache": "/tmp/other",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Plugins.Attempts)
		assert.Equal(t, "/tmp/other", cfg.Plugins.DownloadCache)
	})
}

func TestLoad_ExplicitFile(t *testing.T) {
	tmp := isolate(t)

	path := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plugins]\nuser_agent = \"provisioner/2\"\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "provisioner/2", cfg.Plugins.UserAgent)

	_, err = Load(filepath.Join(tmp, "missing.toml"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	tmp := isolate(t)

	path := filepath.Join(tmp, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[plugins\nattempts = "), 0644))

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{Plugins: PluginsConfig{
		ManagerURL:      "not a url",
		Attempts:        0,
		HeadTimeout:     0,
		DownloadTimeout: time.Second,
		RetryDelay:      -time.Second,
	}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	for _, want := range []string{
		"plugins.manager_url",
		"plugins.attempts",
		"plugins.head_timeout",
		"plugins.retry_delay",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "plugins.download_timeout")
}

func TestPluginsConfig_Settings(t *testing.T) {
	p := PluginsConfig{
		ManagerURL:      "https://example.com/pm/",
		DownloadCache:   "/cache",
		HeadTimeout:     time.Second,
		DownloadTimeout: 2 * time.Second,
		Attempts:        4,
		RetryDelay:      time.Millisecond,
		UserAgent:       "ua",
	}

	s := p.Settings()
	assert.Equal(t, "https://example.com/pm/", s.ManagerURL)
	assert.Equal(t, "/cache", s.DownloadCache)
	assert.Equal(t, 4, s.Attempts)
	assert.Equal(t, time.Millisecond, s.RetryDelay)
	assert.Equal(t, "ua", s.UserAgent)
}

func TestDefaultConfigContent(t *testing.T) {
	assert.Contains(t, DefaultConfigContent(), "[plugins]")
}
