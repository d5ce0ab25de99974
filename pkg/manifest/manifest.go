package manifest

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest is the desired state of one IDE configuration directory
type Manifest struct {
	ConfigDir         string   `toml:"config_dir" yaml:"config_dir"`
	IntelliJHome      string   `toml:"intellij_home" yaml:"intellij_home"`
	PluginsDir        string   `toml:"plugins_dir" yaml:"plugins_dir"`
	Owner             string   `toml:"owner" yaml:"owner"`
	Group             string   `toml:"group" yaml:"group"`
	JDKs              []JDK    `toml:"jdks" yaml:"jdks"`
	DefaultJDK        string   `toml:"default_jdk" yaml:"default_jdk"`
	InspectionProfile string   `toml:"inspection_profile" yaml:"inspection_profile"`
	MavenHome         string   `toml:"maven_home" yaml:"maven_home"`
	Plugins           []string `toml:"plugins" yaml:"plugins"`
	DisabledPlugins   []string `toml:"disabled_plugins" yaml:"disabled_plugins"`
}

// JDK is one entry of the JDK table
type JDK struct {
	Name string `toml:"name" yaml:"name"`
	Home string `toml:"home" yaml:"home"`
}

// Load reads and validates the manifest at path. The format follows the
// extension: .toml, .yaml or .yml.
func Load(afs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read manifest %s", path)
	}

	m, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot parse manifest %s", path)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse decodes a manifest in the format named by ext
func Parse(data []byte, ext string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Newf(errors.ErrManifestLoad, "unsupported manifest format %q", ext)
	}
	return &m, nil
}

// Validate collects every problem in the manifest into one error
func (m *Manifest) Validate() error {
	var result *multierror.Error
	invalid := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Newf(errors.ErrManifestInvalid, format, args...))
	}

	if strings.TrimSpace(m.ConfigDir) == "" {
		invalid("config_dir is required")
	}

	seen := make(map[string]bool)
	for i, j := range m.JDKs {
		if j.Name == "" {
			invalid("jdks[%d]: name is required", i)
		} else if seen[j.Name] {
			invalid("jdks[%d]: duplicate JDK name %q", i, j.Name)
		}
		seen[j.Name] = true
		if j.Home == "" {
			invalid("jdks[%d]: home is required", i)
		}
	}

	if len(m.Plugins) > 0 && m.IntelliJHome == "" {
		invalid("intellij_home is required to install plugins")
	}
	for i, id := range m.Plugins {
		if strings.TrimSpace(id) == "" {
			invalid("plugins[%d]: plugin id is empty", i)
		}
	}
	if m.Group != "" && m.Owner == "" {
		invalid("group is set without owner")
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, errors.ErrManifestInvalid, "invalid manifest")
	}
	return nil
}
