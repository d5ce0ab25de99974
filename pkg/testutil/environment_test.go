// pkg/testutil/environment_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None
// PURPOSE: Test the isolated test environment

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ideaprov/ideaprov/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	env := NewTestEnvironment(t)

	p := paths.New()
	assert.Equal(t, env.ConfigDir, p.ConfigDir())
	assert.Equal(t, filepath.Join(env.CacheDir, paths.DownloadsDir), p.DownloadCacheDir())
	assert.Equal(t, filepath.Join(env.StateDir, paths.LogFileName), p.LogFilePath())
}

func TestWriteAndReadFile(t *testing.T) {
	env := NewTestEnvironment(t)

	env.WriteFile("/a/b/c.txt", "hello")
	assert.Equal(t, "hello", env.ReadFile("/a/b/c.txt"))
	env.AssertNoFile("/a/b/missing.txt")
}

func TestWriteConfig(t *testing.T) {
	env := NewTestEnvironment(t)

	path := env.WriteConfig("[plugins]\nattempts = 2\n")
	assert.Equal(t, paths.New().ConfigFilePath(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "attempts = 2")
}
