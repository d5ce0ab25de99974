// pkg/jdk/roots_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Memory FS
// PURPOSE: Test JDK class and source root discovery

package jdk_test

import (
	"testing"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/jdk/jdktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassPathRoots_Java8(t *testing.T) {
	afs := filesystem.NewMemory()
	jdktest.Java8(t, afs, "/jdk8")
	inspector := &jdk.Inspector{FS: afs}

	roots, err := inspector.ClassPathRoots("/jdk8")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"jar:///jdk8/jre/lib/ext/nashorn.jar!/",
		"jar:///jdk8/jre/lib/jce.jar!/",
		"jar:///jdk8/jre/lib/rt.jar!/",
	}, roots)
}

func TestClassPathRoots_Modular(t *testing.T) {
	afs := filesystem.NewMemory()
	jdktest.Modular(t, afs, "/jdk11", "11.0.2", true)
	inspector := &jdk.Inspector{FS: afs}

	roots, err := inspector.ClassPathRoots("/jdk11")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"jrt:///jdk11!/java.base",
		"jrt:///jdk11!/java.sql",
	}, roots)
}

func TestClassPathRoots_UnsupportedLayout(t *testing.T) {
	afs := filesystem.NewMemory()
	require.NoError(t, afs.MkdirAll("/weird/bin", 0755))
	inspector := &jdk.Inspector{FS: afs}

	_, err := inspector.ClassPathRoots("/weird")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrJDKLayout))
	assert.Contains(t, err.Error(), "Unsupported JDK directory layout: /weird")
}

func TestSourcePathRoots_Java8(t *testing.T) {
	afs := filesystem.NewMemory()
	jdktest.Java8(t, afs, "/jdk8")
	inspector := &jdk.Inspector{FS: afs}

	roots, err := inspector.SourcePathRoots("/jdk8")
	require.NoError(t, err)
	assert.Equal(t, []string{"jar:///jdk8/src.zip!/"}, roots)
}

func TestSourcePathRoots_Modular(t *testing.T) {
	afs := filesystem.NewMemory()
	jdktest.Modular(t, afs, "/jdk11", "11.0.2", true)
	inspector := &jdk.Inspector{FS: afs}

	roots, err := inspector.SourcePathRoots("/jdk11")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"jar:///jdk11/lib/src.zip!/java.base",
		"jar:///jdk11/lib/src.zip!/java.sql",
	}, roots)
}

func TestSourcePathRoots_MissingHome(t *testing.T) {
	inspector := &jdk.Inspector{FS: filesystem.NewMemory()}

	_, err := inspector.SourcePathRoots("/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrJDKLayout))
}
