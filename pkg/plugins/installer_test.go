// pkg/plugins/installer_test.go
// TEST TYPE: Business Logic Integration
// DEPENDENCIES: httptest server, Memory FS, chown recorder
// PURPOSE: Test plugin download, placement and ownership

package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/testutil"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pluginsDir = "/home/dev/.IntelliJIdea/config/plugins"

type pluginServer struct {
	srv       *httptest.Server
	downloads int32
}

// newPluginServer redirects every manager query to location and serves body
// for any other path.
func newPluginServer(t *testing.T, location string, body []byte, status int) *pluginServer {
	t.Helper()
	ps := &pluginServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/pluginManager/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&ps.downloads, 1)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})
	ps.srv = httptest.NewServer(mux)
	t.Cleanup(ps.srv.Close)
	return ps
}

func newIDE(t *testing.T) afero.Fs {
	t.Helper()
	afs := filesystem.NewMemory()
	writeFile(t, afs, filepath.Join(ideHome, "product-info.json"), []byte(`{"buildNumber": "IU-193.5662.53"}`))
	return afs
}

// newOwnedIDE is newIDE with the IDE config dir already present and every
// chown recorded.
func newOwnedIDE(t *testing.T) *testutil.ChownRecorder {
	t.Helper()
	afs := newIDE(t)
	require.NoError(t, afs.MkdirAll(filepath.Dir(pluginsDir), 0755))
	return testutil.NewChownRecorder(afs)
}

var pluginOwner = &types.Owner{UID: 1001, GID: 1002}

func installOptions() InstallOptions {
	return InstallOptions{IDEHome: ideHome, PluginsDir: pluginsDir, PluginID: "Docker"}
}

func TestInstall_Zip(t *testing.T) {
	archive := zipBytes(t,
		zipEntry{"Docker/", ""},
		zipEntry{"Docker/lib/", ""},
		zipEntry{"Docker/lib/docker.jar", "jar bytes"},
		zipEntry{"Docker/lib/docker-api.jar", "more jar bytes"},
	)
	ps := newPluginServer(t, "/files/7724/65432/Docker.zip?updateId=65432", archive, http.StatusOK)
	afs := newOwnedIDE(t)
	installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))
	opts := installOptions()
	opts.Owner = pluginOwner

	res, err := installer.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, `Plugin "Docker" has been installed`, res.Msg)

	// everything below the plugins dir, the dir itself, nothing above it
	assert.Equal(t, []string{
		pluginsDir,
		filepath.Join(pluginsDir, "Docker"),
		filepath.Join(pluginsDir, "Docker", "lib"),
		filepath.Join(pluginsDir, "Docker", "lib", "docker-api.jar"),
		filepath.Join(pluginsDir, "Docker", "lib", "docker.jar"),
	}, afs.Chowned())
	owner, ok := afs.OwnerOf(filepath.Join(pluginsDir, "Docker", "lib", "docker.jar"))
	require.True(t, ok)
	assert.Equal(t, testutil.Ownership{UID: 1001, GID: 1002}, owner)

	data, err := afero.ReadFile(afs, filepath.Join(pluginsDir, "Docker", "lib", "docker.jar"))
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
	assert.True(t, filesystem.IsFile(afs, "/var/cache/ideaprov/7724-65432-Docker.zip"))

	afs.Reset()
	again, err := installer.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, `Plugin "Docker" was already installed`, again.Msg)
	assert.Empty(t, afs.Chowned())
	assert.EqualValues(t, 1, atomic.LoadInt32(&ps.downloads), "second run must use the cache")
}

func TestInstall_Jar(t *testing.T) {
	ps := newPluginServer(t, "/files/1/2/tool.jar?updateId=2", []byte("jar"), http.StatusOK)
	afs := newOwnedIDE(t)
	installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))
	opts := installOptions()
	opts.Owner = pluginOwner

	res, err := installer.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	info, err := afs.Stat(filepath.Join(pluginsDir, "tool.jar"))
	require.NoError(t, err)
	assert.Equal(t, filesystem.FileMode, info.Mode().Perm())

	// the cached copy keeps its owner
	assert.Equal(t, []string{pluginsDir, filepath.Join(pluginsDir, "tool.jar")}, afs.Chowned())
	_, cached := afs.OwnerOf("/var/cache/ideaprov/tool.jar")
	assert.False(t, cached)

	afs.Reset()
	again, err := installer.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Empty(t, afs.Chowned())
}

func TestInstall_NilOwnerChownsNothing(t *testing.T) {
	ps := newPluginServer(t, "/files/1/2/tool.jar", []byte("jar"), http.StatusOK)
	afs := newOwnedIDE(t)
	installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))

	_, err := installer.Install(context.Background(), installOptions())
	require.NoError(t, err)
	assert.True(t, filesystem.IsFile(afs, filepath.Join(pluginsDir, "tool.jar")))
	assert.Empty(t, afs.Chowned())
}

func TestInstall_UnrecognisedBuildSkipsManager(t *testing.T) {
	var queries int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&queries, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	afs := filesystem.NewMemory()
	writeFile(t, afs, filepath.Join(ideHome, "product-info.json"), []byte(`{"buildNumber": "garbage"}`))
	installer := NewInstaller(afs, testSettings(srv.URL+"/pluginManager/"))

	_, err := installer.Install(context.Background(), installOptions())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBuildNumber), "got %v", err)
	assert.Contains(t, err.Error(), `unrecognised build number "garbage"`)
	assert.EqualValues(t, 0, atomic.LoadInt32(&queries))
	assert.False(t, filesystem.Exists(afs, pluginsDir))
}

func TestInstall_CheckModeDownloadsOnly(t *testing.T) {
	ps := newPluginServer(t, "/files/1/2/tool.jar", []byte("jar"), http.StatusOK)
	afs := newIDE(t)
	installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))

	opts := installOptions()
	opts.CheckMode = true
	res, err := installer.Install(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, filesystem.IsFile(afs, "/var/cache/ideaprov/tool.jar"))
	assert.False(t, filesystem.Exists(afs, pluginsDir))
}

func TestInstall_Errors(t *testing.T) {
	tests := []struct {
		name     string
		location string
		body     []byte
		status   int
		code     errors.ErrorCode
		message  string
	}{
		{
			name:     "empty zip",
			location: "/files/1/2/empty.zip",
			body:     zipBytes(t),
			status:   http.StatusOK,
			code:     errors.ErrPluginEmpty,
			message:  "Plugin is empty: /var/cache/ideaprov/1-2-empty.zip",
		},
		{
			name:     "escaping entry",
			location: "/files/1/2/evil.zip",
			body:     zipBytes(t, zipEntry{"evil/ok.txt", "x"}, zipEntry{"../../../../etc/cron.d/evil", "x"}),
			status:   http.StatusOK,
			code:     errors.ErrUnsafePath,
			message:  "Illegal file path in plugin archive",
		},
		{
			name:     "download keeps failing",
			location: "/files/1/2/broken.zip",
			status:   http.StatusBadGateway,
			code:     errors.ErrDownload,
			message:  `Error downloading url "`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := newPluginServer(t, tt.location, tt.body, tt.status)
			afs := newIDE(t)
			installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))

			_, err := installer.Install(context.Background(), installOptions())
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
			assert.False(t, filesystem.Exists(afs, "/etc/cron.d/evil"))
		})
	}
}

func TestInstall_DownloadFailureLeavesNoCacheFile(t *testing.T) {
	ps := newPluginServer(t, "/files/1/2/broken.zip", nil, http.StatusInternalServerError)
	afs := newIDE(t)
	installer := NewInstaller(afs, testSettings(ps.srv.URL+"/pluginManager/"))

	_, err := installer.Install(context.Background(), installOptions())
	require.Error(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&ps.downloads))

	entries, err := afero.ReadDir(afs, "/var/cache/ideaprov")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInstall_DownloadRetriesDoNotWait(t *testing.T) {
	ps := newPluginServer(t, "/files/1/2/broken.zip", nil, http.StatusBadGateway)
	settings := testSettings(ps.srv.URL + "/pluginManager/")
	settings.RetryDelay = 10 * time.Second
	installer := NewInstaller(newIDE(t), settings)

	start := time.Now()
	_, err := installer.Install(context.Background(), installOptions())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.EqualValues(t, 3, atomic.LoadInt32(&ps.downloads))
}
