// Package jdktest builds fake JDK installations for tests.
package jdktest

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Runner answers commands by executable base name
type Runner struct {
	Outputs map[string]jdk.Output
	Calls   []string
}

// NewRunner answers `java -version` with javaVersion and `jrunscript`
// with spec.
func NewRunner(javaVersion, spec string) *Runner {
	return &Runner{Outputs: map[string]jdk.Output{
		"java":       {Stderr: javaVersion + "\nOpenJDK Runtime Environment\n"},
		"jrunscript": {Stdout: spec + "\n"},
	}}
}

func (r *Runner) Run(_ context.Context, name string, args ...string) (jdk.Output, error) {
	r.Calls = append(r.Calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return r.Outputs[filepath.Base(name)], nil
}

// Java8 lays out a JDK 8 style install with jre/lib and jre/lib/ext jars and
// a top-level src.zip.
func Java8(t *testing.T, afs afero.Fs, home string) {
	t.Helper()
	write(t, afs, filepath.Join(home, "bin", "java"), "#!/bin/sh\n")
	write(t, afs, filepath.Join(home, "bin", "jrunscript"), "#!/bin/sh\n")
	write(t, afs, filepath.Join(home, "jre", "lib", "rt.jar"), "")
	write(t, afs, filepath.Join(home, "jre", "lib", "jce.jar"), "")
	write(t, afs, filepath.Join(home, "jre", "lib", "logging.properties"), "")
	write(t, afs, filepath.Join(home, "jre", "lib", "ext", "nashorn.jar"), "")
	write(t, afs, filepath.Join(home, "src.zip"), "")
}

// Modular lays out a JDK 9+ install with jmods and a modular lib/src.zip.
// withJrunscript controls whether bin/jrunscript exists; without it a
// release file carries the version.
func Modular(t *testing.T, afs afero.Fs, home, javaVersion string, withJrunscript bool) {
	t.Helper()
	write(t, afs, filepath.Join(home, "bin", "java"), "#!/bin/sh\n")
	if withJrunscript {
		write(t, afs, filepath.Join(home, "bin", "jrunscript"), "#!/bin/sh\n")
	}
	write(t, afs, filepath.Join(home, "release"), "IMPLEMENTOR=\"Eclipse Adoptium\"\nJAVA_VERSION=\""+javaVersion+"\"\n")
	write(t, afs, filepath.Join(home, "jmods", "java.base.jmod"), "")
	write(t, afs, filepath.Join(home, "jmods", "java.sql.jmod"), "")
	write(t, afs, filepath.Join(home, "jmods", "README"), "")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{
		"java.sql/module-info.java",
		"java.sql/java/sql/Connection.java",
		"java.base/module-info.java",
		"java.base/java/lang/Object.java",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("// source"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	write(t, afs, filepath.Join(home, "lib", "src.zip"), buf.String())
}

func write(t *testing.T, afs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(afs, path, []byte(content), 0755))
}
