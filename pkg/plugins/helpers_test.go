package plugins

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type zipEntry struct {
	name    string
	content string
}

func zipBytes(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		if e.content != "" {
			_, err = w.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, afs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(afs, path, data, 0644))
}

func testSettings(managerURL string) Settings {
	s := DefaultSettings()
	s.ManagerURL = managerURL
	s.DownloadCache = "/var/cache/ideaprov"
	s.HeadTimeout = 2 * time.Second
	s.DownloadTimeout = 2 * time.Second
	s.RetryDelay = time.Millisecond
	s.UserAgent = "ideaprov-test"
	return s
}
