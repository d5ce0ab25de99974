package jdk

import (
	"archive/zip"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/spf13/afero"
)

const moduleInfoSuffix = "/module-info.java"

// ClassPathRoots lists the class path root URLs for the JDK at home.
// Java 8 style layouts contribute every jar in jre/lib and jre/lib/ext;
// modular JDKs contribute one jrt URL per jmod.
func (i *Inspector) ClassPathRoots(home string) ([]string, error) {
	jreLib := filepath.Join(home, "jre", "lib")
	jreExt := filepath.Join(jreLib, "ext")
	jmods := filepath.Join(home, "jmods")

	switch {
	case filesystem.IsDir(i.FS, jreExt):
		files, err := i.filesWithSuffix(".jar", jreLib, jreExt)
		if err != nil {
			return nil, err
		}
		return jarURLs(files), nil

	case filesystem.IsDir(i.FS, jmods):
		files, err := i.filesWithSuffix(".jmod", jmods)
		if err != nil {
			return nil, err
		}
		modules := make([]string, 0, len(files))
		for _, f := range files {
			modules = append(modules, strings.TrimSuffix(filepath.Base(f), ".jmod"))
		}
		sort.Strings(modules)

		urls := make([]string, 0, len(modules))
		for _, m := range modules {
			urls = append(urls, "jrt://"+home+"!/"+m)
		}
		return urls, nil
	}

	return nil, errors.Newf(errors.ErrJDKLayout, "Unsupported JDK directory layout: %s", home)
}

// SourcePathRoots lists the source root URLs for the JDK at home. A modular
// lib/src.zip contributes one URL per module found in it; otherwise every
// *src.zip directly in home is used.
func (i *Inspector) SourcePathRoots(home string) ([]string, error) {
	srcZip := filepath.Join(home, "lib", "src.zip")

	switch {
	case filesystem.IsFile(i.FS, srcZip):
		modules, err := i.zipModules(srcZip)
		if err != nil {
			return nil, err
		}
		urls := make([]string, 0, len(modules))
		for _, m := range modules {
			urls = append(urls, "jar://"+home+"/lib/src.zip!/"+m)
		}
		return urls, nil

	case filesystem.IsDir(i.FS, home):
		files, err := i.filesWithSuffix("src.zip", home)
		if err != nil {
			return nil, err
		}
		return jarURLs(files), nil
	}

	return nil, errors.Newf(errors.ErrJDKLayout, "Unsupported JDK directory layout: %s", home)
}

func (i *Inspector) filesWithSuffix(suffix string, dirs ...string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := afero.ReadDir(i.FS, dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
		}
		for _, e := range entries {
			if e.Mode().IsRegular() && strings.HasSuffix(e.Name(), suffix) {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func (i *Inspector) zipModules(path string) ([]string, error) {
	f, err := i.FS.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read zip %s", path)
	}

	var modules []string
	for _, entry := range zr.File {
		if strings.HasSuffix(entry.Name, moduleInfoSuffix) {
			modules = append(modules, strings.TrimSuffix(entry.Name, moduleInfoSuffix))
		}
	}
	sort.Strings(modules)
	return modules, nil
}

func jarURLs(files []string) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, "jar://"+f+"!/")
	}
	return urls
}
