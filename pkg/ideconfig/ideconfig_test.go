package ideconfig_test

import (
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/ideconfig"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/jdk/jdktest"
	"github.com/ideaprov/ideaprov/pkg/testutil"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	configDir   = "/home/dev/.IntelliJIdea/config"
	java8Home   = "/usr/lib/jvm/java-8"
	java8Banner = `openjdk version "1.8.0_292"`
)

type fixture struct {
	fs     afero.Fs
	runner *jdktest.Runner
	cfg    *ideconfig.Configurator
	target ideconfig.Target
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	afs := filesystem.NewMemory()
	jdktest.Java8(t, afs, java8Home)
	runner := jdktest.NewRunner(java8Banner, "1.8")
	return &fixture{
		fs:     afs,
		runner: runner,
		cfg:    ideconfig.New(afs, &jdk.Inspector{FS: afs, Runner: runner}),
		target: ideconfig.Target{ConfigDir: configDir},
	}
}

// newOwnedFixture records every chown and configures target with an owner.
// The IDE user dir exists, the config dir below it does not.
func newOwnedFixture(t *testing.T) (*fixture, *testutil.ChownRecorder) {
	t.Helper()
	f := newFixture(t)
	require.NoError(t, f.fs.MkdirAll(filepath.Dir(configDir), 0755))
	rec := testutil.NewChownRecorder(f.fs)
	f.fs = rec
	f.cfg = ideconfig.New(rec, &jdk.Inspector{FS: rec, Runner: f.runner})
	f.target.Owner = &types.Owner{UID: 1001, GID: 1002}
	return f, rec
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, path)
	require.NoError(t, err)
	return string(data)
}

func (f *fixture) parse(t *testing.T, path string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(f.read(t, path)))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func (f *fixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0644))
}
