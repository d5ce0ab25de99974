package plugins

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
)

// RootDir returns the first path segment of the first entry in the zip at
// path, the directory the plugin unpacks into.
func RootDir(afs afero.Fs, path string) (string, error) {
	if !filesystem.IsFile(afs, path) {
		return "", errors.Newf(errors.ErrFileNotFound, "File not found: %s", path)
	}
	zr, closer, err := openZip(afs, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = closer.Close() }()

	if len(zr.File) == 0 {
		return "", errors.Newf(errors.ErrPluginEmpty, "Plugin is empty: %s", path)
	}
	root, _, _ := strings.Cut(zr.File[0].Name, "/")
	return root, nil
}

// Extract unpacks the zip at path into dir. Every extracted path and its
// parents below dir are given to o. Entries that would land outside dir
// abort the extraction.
func Extract(afs afero.Fs, path, dir string, o *types.Owner) error {
	if !filesystem.IsFile(afs, path) {
		return errors.Newf(errors.ErrFileNotFound, "File not found: %s", path)
	}
	zr, closer, err := openZip(afs, path)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	targets := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		if !filesystem.IsInside(dir, target) {
			return errors.Newf(errors.ErrUnsafePath, "Illegal file path in plugin archive: %s", f.Name).
				WithDetail("archive", path)
		}
		targets = append(targets, target)
	}

	for i, f := range zr.File {
		if err := extractEntry(afs, f, targets[i]); err != nil {
			return err
		}
	}

	for _, target := range targets {
		if err := filesystem.ChownUpTo(afs, target, dir, o); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(afs afero.Fs, f *zip.File, target string) error {
	if f.FileInfo().IsDir() {
		if err := afs.MkdirAll(target, filesystem.DirMode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", target)
		}
		return nil
	}

	if err := afs.MkdirAll(filepath.Dir(target), filesystem.DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", filepath.Dir(target))
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = filesystem.FileMode
	}

	in, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s from archive", f.Name)
	}
	defer func() { _ = in.Close() }()

	out, err := afs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", target)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot extract %s", target)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", target)
	}
	return nil
}
