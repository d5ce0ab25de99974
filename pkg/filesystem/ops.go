package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
)

// Default modes for created files and directories
const (
	DirMode  fs.FileMode = 0775
	FileMode fs.FileMode = 0664
)

// IsFile reports whether path exists and is a regular file
func IsFile(afs afero.Fs, path string) bool {
	info, err := afs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path exists and is a directory
func IsDir(afs afero.Fs, path string) bool {
	info, err := afs.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether anything exists at path
func Exists(afs afero.Fs, path string) bool {
	_, err := afs.Stat(path)
	return err == nil
}

// IsMissingOrEmpty reports whether path is absent, not a regular file, or zero bytes.
func IsMissingOrEmpty(afs afero.Fs, path string) bool {
	info, err := afs.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return true
	}
	return info.Size() == 0
}

// Chown assigns o to path. A nil owner is a no-op.
func Chown(afs afero.Fs, path string, o *types.Owner) error {
	if o == nil {
		return nil
	}
	if err := afs.Chown(path, o.UID, o.GID); err != nil {
		return errors.Wrapf(err, errors.ErrChown, "cannot chown %s to %s", path, o)
	}
	return nil
}

// MakeDirs creates every missing directory up to and including path, giving
// each newly created one mode and owner. Existing directories are untouched.
func MakeDirs(afs afero.Fs, path string, mode fs.FileMode, o *types.Owner) error {
	var missing []string
	for dir := filepath.Clean(path); !Exists(afs, dir); {
		missing = append(missing, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		dir := missing[i]
		if err := afs.Mkdir(dir, mode); err != nil && !os.IsExist(err) {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dir)
		}
		// Mkdir is subject to the umask
		if err := afs.Chmod(dir, mode); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot set mode on %s", dir)
		}
		if err := Chown(afs, dir, o); err != nil {
			return err
		}
	}
	return nil
}

// TouchFile creates an empty file with mode and owner if it does not exist.
func TouchFile(afs afero.Fs, path string, mode fs.FileMode, o *types.Owner) error {
	if Exists(afs, path) {
		return nil
	}
	f, err := afs.OpenFile(path, os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", path)
	}
	if err := afs.Chmod(path, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot set mode on %s", path)
	}
	return Chown(afs, path, o)
}

// WriteFile replaces the content of path, keeping the existing mode when
// the file is already there.
func WriteFile(afs afero.Fs, path string, data []byte) error {
	mode := FileMode
	if info, err := afs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(afs, path, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}

// CopyFile copies src to dst, then applies owner and mode to dst.
func CopyFile(afs afero.Fs, src, dst string, mode fs.FileMode, o *types.Owner) error {
	in, err := afs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := afs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", dst)
	}

	if err := Chown(afs, dst, o); err != nil {
		return err
	}
	if err := afs.Chmod(dst, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set mode on %s", dst)
	}
	return nil
}

// WriteAtomic streams r into a temp file inside dir and renames it to
// dir/name once fully written. A failed copy leaves nothing behind.
func WriteAtomic(afs afero.Fs, dir, name string, r io.Reader) (string, error) {
	tmp, err := afero.TempFile(afs, dir, "."+name+".*")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileCreate, "cannot create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = afs.Remove(tmpName)
		return "", errors.Wrap(err, errors.ErrFileWrite, "failed to create temporary content file")
	}
	if err := tmp.Close(); err != nil {
		_ = afs.Remove(tmpName)
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", tmpName)
	}

	dest := filepath.Join(dir, name)
	if err := afs.Rename(tmpName, dest); err != nil {
		_ = afs.Remove(tmpName)
		return "", errors.Wrapf(err, errors.ErrFileWrite, "cannot move download to %s", dest)
	}
	return dest, nil
}

// ChownUpTo assigns o to path and each of its parents, stopping before stop.
// path must lie inside stop.
func ChownUpTo(afs afero.Fs, path, stop string, o *types.Owner) error {
	if o == nil {
		return nil
	}
	stop = filepath.Clean(stop)
	for p := filepath.Clean(path); p != stop; p = filepath.Dir(p) {
		if !IsInside(stop, p) {
			return errors.Newf(errors.ErrUnsafePath, "%s is outside %s", path, stop)
		}
		if err := Chown(afs, p, o); err != nil {
			return err
		}
	}
	return nil
}

// IsInside reports whether path is strictly below dir once both are cleaned
func IsInside(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
