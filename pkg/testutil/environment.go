package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ideaprov/ideaprov/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnvironment isolates a test from the user's ideaprov directories
type TestEnvironment struct {
	// Temp directory holding the XDG overrides
	Root      string
	ConfigDir string
	CacheDir  string
	StateDir  string

	// In-memory filesystem for the code under test
	FS afero.Fs

	t *testing.T
}

// NewTestEnvironment points IDEAPROV_CONFIG_DIR, IDEAPROV_CACHE_DIR and
// IDEAPROV_STATE_DIR at a fresh temp dir for the duration of the test.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		CacheDir:  filepath.Join(root, "cache"),
		StateDir:  filepath.Join(root, "state"),
		FS:        afero.NewMemMapFs(),
		t:         t,
	}

	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvCacheDir, env.CacheDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	return env
}

// WriteConfig writes the user config file on the real filesystem, where
// the configuration loader looks for it.
func (e *TestEnvironment) WriteConfig(content string) string {
	e.t.Helper()
	path := filepath.Join(e.ConfigDir, paths.ConfigFileName)
	require.NoError(e.t, os.MkdirAll(e.ConfigDir, 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteFile creates path and its parents in FS
func (e *TestEnvironment) WriteFile(path, content string) {
	e.t.Helper()
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, afero.WriteFile(e.FS, path, []byte(content), 0o644))
}

// ReadFile returns the content of path in FS
func (e *TestEnvironment) ReadFile(path string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.FS, path)
	require.NoError(e.t, err)
	return string(data)
}

// AssertNoFile fails when path exists in FS
func (e *TestEnvironment) AssertNoFile(path string) {
	e.t.Helper()
	exists, err := afero.Exists(e.FS, path)
	require.NoError(e.t, err)
	assert.False(e.t, exists, "%s should not exist", path)
}
