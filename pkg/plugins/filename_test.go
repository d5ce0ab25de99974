// pkg/plugins/filename_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (property based)
// PURPOSE: Test download cache file names

package plugins

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFileName(t *testing.T) {
	opaque := "https://example.com/download?id=42"
	sum := sha256.Sum256([]byte(opaque))

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "jar with query",
			url:  "https://plugins.jetbrains.com/files/7724/65432/Docker.jar?updateId=65432&pluginId=7724",
			want: "Docker.jar",
		},
		{
			name: "jar without query",
			url:  "https://cdn.example.com/plugins/tool.jar",
			want: "tool.jar",
		},
		{
			name: "versioned zip",
			url:  "https://plugins.jetbrains.com/files/7724/65432/Docker-193.zip?updateId=65432",
			want: "7724-65432-Docker-193.zip",
		},
		{
			name: "versioned without query",
			url:  "https://plugins.jetbrains.com/files/1/2/plugin.zip",
			want: "1-2-plugin.zip",
		},
		{
			name: "opaque url",
			url:  opaque,
			want: "Docker-" + hex.EncodeToString(sum[:]) + ".zip",
		},
		{
			name: "jar name in query only",
			url:  "https://example.com/get?file=/x/evil.jar",
			want: "Docker-" + sha256Hex("https://example.com/get?file=/x/evil.jar") + ".zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.url, "Docker"))
		})
	}
}

func sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestFileName_Jar(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dirs := rapid.SliceOfN(rapid.StringMatching(`[a-z0-9]{1,8}`), 0, 4).Draw(t, "dirs")
		name := rapid.StringMatching(`[A-Za-z0-9_-]{1,20}`).Draw(t, "name") + ".jar"
		query := rapid.SampledFrom([]string{"", "?updateId=1", "?a=b&c=/d.zip"}).Draw(t, "query")

		url := "https://host/" + strings.Join(append(dirs, name), "/") + query
		if got := FileName(url, "id"); got != name {
			t.Fatalf("FileName(%q) = %q, want %q", url, got, name)
		}
	})
}

func TestFileName_Versioned(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		plugin := rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "plugin")
		update := rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "update")
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9_.-]{0,20}`).Draw(t, "name") + ".zip"
		query := rapid.SampledFrom([]string{"", "?updateId=" + update}).Draw(t, "query")

		url := "https://host/files/" + plugin + "/" + update + "/" + name + query
		want := plugin + "-" + update + "-" + name
		if got := FileName(url, "id"); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", url, got, want)
		}
	})
}

func TestFileName_FallbackIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z][a-z.]{0,15}`).Draw(t, "id")
		path := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "path")
		url := "https://host/" + path + "?build=" + rapid.StringMatching(`[0-9.]{1,10}`).Draw(t, "build")

		got := FileName(url, id)
		if got != FileName(url, id) {
			t.Fatalf("FileName(%q) is not deterministic", url)
		}
		if strings.Contains(got, "/") {
			t.Fatalf("FileName(%q) = %q contains a separator", url, got)
		}
		if !strings.HasPrefix(got, id+"-") || !strings.HasSuffix(got, ".zip") {
			t.Fatalf("FileName(%q) = %q, want %s-<hash>.zip", url, got, id)
		}
	})
}
