package jdk

import (
	"bufio"
	"context"
	"path/filepath"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/spf13/afero"
)

const specVersionScript = `print(java.lang.System.getProperty("java.specification.version"))`

// Inspector reads facts about an installed JDK
type Inspector struct {
	FS     afero.Fs
	Runner Runner
}

// NewInspector creates an Inspector over the real filesystem and processes
func NewInspector() *Inspector {
	return &Inspector{FS: filesystem.NewOS(), Runner: NewCommandRunner()}
}

// JavaVersion returns the first line `java -version` prints to stderr,
// e.g. `openjdk version "11.0.2" 2019-01-15`.
func (i *Inspector) JavaVersion(ctx context.Context, home string) (string, error) {
	executable := filepath.Join(home, "bin", "java")
	if !filesystem.IsFile(i.FS, executable) {
		return "", errors.Newf(errors.ErrFileNotFound, "File not found: %s", executable)
	}

	out, err := i.Runner.Run(ctx, executable, "-version")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCommand, "Error while querying Java version")
	}
	if out.ExitCode != 0 {
		return "", errors.Newf(errors.ErrCommand, "Error while querying Java version: %s", out.Stdout+out.Stderr)
	}

	line, _, _ := strings.Cut(out.Stderr, "\n")
	return strings.TrimRight(line, "\r"), nil
}

// SpecificationVersion returns java.specification.version, e.g. "1.8" or "17".
// It asks jrunscript when the JDK ships one and otherwise reads JAVA_VERSION
// from the release file, since jrunscript was removed in JDK 15.
func (i *Inspector) SpecificationVersion(ctx context.Context, home string) (string, error) {
	executable := filepath.Join(home, "bin", "jrunscript")
	if filesystem.IsFile(i.FS, executable) {
		out, err := i.Runner.Run(ctx, executable, "-e", specVersionScript)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCommand, "Error while querying Java specification version")
		}
		if out.ExitCode != 0 || out.Stderr != "" {
			return "", errors.Newf(errors.ErrCommand, "Error while querying Java specification version: %s", out.Stdout+out.Stderr)
		}
		return strings.TrimSpace(out.Stdout), nil
	}

	release := filepath.Join(home, "release")
	if !filesystem.IsFile(i.FS, release) {
		return "", errors.Newf(errors.ErrFileNotFound, "File not found: %s", executable)
	}
	javaVersion, err := i.releaseJavaVersion(release)
	if err != nil {
		return "", err
	}
	return SpecFromJavaVersion(javaVersion)
}

func (i *Inspector) releaseJavaVersion(path string) (string, error) {
	f, err := i.FS.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if ok && strings.TrimSpace(key) == "JAVA_VERSION" {
			return strings.Trim(strings.TrimSpace(value), `"`), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	return "", errors.Newf(errors.ErrJDKVersion, "JAVA_VERSION missing from %s", path)
}

// SpecFromJavaVersion maps a full runtime version to its specification
// version: "1.8.0_292" -> "1.8", "17.0.2" -> "17".
func SpecFromJavaVersion(javaVersion string) (string, error) {
	v, err := parseJavaVersion(javaVersion)
	if err != nil {
		return "", err
	}
	segments := v.Segments()
	if segments[0] == 1 {
		return "1." + strconv.Itoa(segments[1]), nil
	}
	return strconv.Itoa(segments[0]), nil
}

// LanguageLevel maps a specification version to the IDE's language level
// name: "1.8" -> "JDK_1_8", "11" -> "JDK_11". The names follow IntelliJ's
// LanguageLevel enum, so the dot in "1.8" becomes an underscore, never "JDK_1.8".
func LanguageLevel(spec string) (string, error) {
	v, err := parseJavaVersion(spec)
	if err != nil {
		return "", err
	}
	segments := v.Segments()
	if segments[0] == 1 {
		return "JDK_1_" + strconv.Itoa(segments[1]), nil
	}
	return "JDK_" + strconv.Itoa(segments[0]), nil
}

func parseJavaVersion(s string) (*goversion.Version, error) {
	// 1.8.0_292 is not semver; the update number does not matter here
	clean, _, _ := strings.Cut(strings.TrimSpace(s), "_")
	v, err := goversion.NewVersion(clean)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrJDKVersion, "unrecognised Java version %q", s)
	}
	return v, nil
}
