package plugins

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	goversion "github.com/hashicorp/go-version"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/spf13/afero"
)

// Locations of the application info descriptor inside lib/resources.jar
var applicationInfoEntries = []string{
	"idea/IdeaApplicationInfo.xml",
	"idea/ApplicationInfo.xml",
}

// BuildNumber reads the build number, e.g. "193.5662.53", of the IDE
// installed at home. lib/resources.jar is consulted first, product-info.json
// second; newer releases only ship the latter.
func BuildNumber(afs afero.Fs, home string) (string, error) {
	build, found, err := buildFromResources(afs, home)
	if err != nil || found {
		return build, err
	}
	return buildFromProductInfo(afs, home)
}

// Branch returns the leading component of a build number, e.g. 193 for
// "IU-193.5662.53".
func Branch(build string) (int, error) {
	if _, rest, ok := strings.Cut(build, "-"); ok {
		build = rest
	}
	v, err := goversion.NewVersion(build)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrBuildNumber, "unrecognised build number %q", build)
	}
	return v.Segments()[0], nil
}

func buildError(home, reason string) error {
	return errors.Newf(errors.ErrBuildNumber, "Unable to determine IntelliJ version from path: %s (%s)", home, reason)
}

func buildFromResources(afs afero.Fs, home string) (string, bool, error) {
	path := filepath.Join(home, "lib", "resources.jar")
	if !filesystem.IsFile(afs, path) {
		return "", false, nil
	}

	zr, closer, err := openZip(afs, path)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = closer.Close() }()

	for _, name := range applicationInfoEntries {
		entry, err := zr.Open(name)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(entry)
		_ = entry.Close()
		if err != nil {
			return "", false, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s from %s", name, path)
		}
		build, err := buildFromXML(home, data)
		return build, true, err
	}

	return "", false, buildError(home, `XML info file not found in "lib/resources.jar"`)
}

func buildFromXML(home string, data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return "", buildError(home, "invalid application info XML")
	}

	// The element may or may not carry the application-info namespace
	var build *etree.Element
	for _, child := range doc.Root().ChildElements() {
		if child.Tag == "build" {
			build = child
			break
		}
	}
	if build == nil {
		return "", buildError(home, "unsupported schema - missing build element")
	}

	number := build.SelectAttr("number")
	if number == nil {
		return "", buildError(home, "unsupported schema - missing build number value")
	}
	return number.Value, nil
}

type productInfo struct {
	BuildNumber string `json:"buildNumber"`
}

func buildFromProductInfo(afs afero.Fs, home string) (string, error) {
	path := filepath.Join(home, "product-info.json")
	if !filesystem.IsFile(afs, path) {
		return "", buildError(home, `"product-info.json" not found`)
	}

	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	var info productInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return "", buildError(home, fmt.Sprintf(`invalid "product-info.json": %v`, err))
	}
	if info.BuildNumber == "" {
		return "", buildError(home, `"product-info.json" has no buildNumber`)
	}
	return info.BuildNumber, nil
}

// openZip opens a zip archive stored on afs
func openZip(afs afero.Fs, path string) (*zip.Reader, io.Closer, error) {
	f, err := afs.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	zr, err := zip.NewReader(f, info.Size())
	// Unsafe names are rejected entry by entry during extraction
	if err != nil && err != zip.ErrInsecurePath {
		_ = f.Close()
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read zip %s", path)
	}
	return zr, f, nil
}
