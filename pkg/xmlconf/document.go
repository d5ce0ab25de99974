package xmlconf

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
)

// RootApplication is the root element of every IDE option file
const RootApplication = "application"

// Document is an option file held in memory between load and save
type Document struct {
	Path string
	Root *etree.Element

	// Before is the rendering of the file as it was loaded, empty for a new file
	Before string
}

// LoadOptions controls how a missing file is handled
type LoadOptions struct {
	Owner     *types.Owner
	CheckMode bool
}

// Load reads the option file at path. A missing or empty file yields a fresh
// document with an application root; outside check mode the parent
// directories and an empty file are created first, owned by opts.Owner.
func Load(afs afero.Fs, path string, opts LoadOptions) (*Document, error) {
	if filesystem.IsMissingOrEmpty(afs, path) {
		if !opts.CheckMode {
			if err := filesystem.MakeDirs(afs, filepath.Dir(path), filesystem.DirMode, opts.Owner); err != nil {
				return nil, err
			}
			if err := filesystem.TouchFile(afs, path, filesystem.FileMode, opts.Owner); err != nil {
				return nil, err
			}
		}
		doc := etree.NewDocument()
		return &Document{Path: path, Root: doc.CreateElement(RootApplication)}, nil
	}

	d, err := Read(afs, path)
	if err != nil {
		return nil, err
	}
	if d.Root.FullTag() != RootApplication {
		return nil, errors.Newf(errors.ErrUnsupportedRoot, "Unsupported root element: %s", d.Root.FullTag()).
			WithDetail("path", path)
	}
	return d, nil
}

// Read parses an existing file without creating anything
func Read(afs afero.Fs, path string) (*Document, error) {
	if !filesystem.IsFile(afs, path) {
		return nil, errors.Newf(errors.ErrFileNotFound, "File not found: %s", path)
	}
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidXML, "cannot parse %s", path)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.Newf(errors.ErrInvalidXML, "Invalid XML: no root element in %s", path)
	}

	return &Document{Path: path, Root: root, Before: Render(root)}, nil
}

// After renders the current state of the document
func (d *Document) After() string {
	return Render(d.Root)
}

// Diff pairs the loaded and current renderings
func (d *Document) Diff() *types.Diff {
	return &types.Diff{Before: d.Before, After: d.After()}
}

// Save writes the current rendering back to Path
func (d *Document) Save(afs afero.Fs) error {
	return filesystem.WriteFile(afs, d.Path, []byte(d.After()))
}

// Render serializes elem on its own, indented by two spaces, without an
// XML declaration. Whitespace-only text from the source is discarded so two
// trees with the same content always render identically.
func Render(elem *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(elem.Copy())
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
