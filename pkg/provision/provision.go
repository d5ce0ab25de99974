// Package provision binds the configuration operations and the plugin
// installer to one IDE configuration directory and its owner.
package provision

import (
	"context"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/ideconfig"
	"github.com/ideaprov/ideaprov/pkg/jdk"
	"github.com/ideaprov/ideaprov/pkg/owner"
	"github.com/ideaprov/ideaprov/pkg/paths"
	"github.com/ideaprov/ideaprov/pkg/plugins"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/spf13/afero"
)

// Options name the directories and ownership to provision. Relative
// ConfigDir and PluginsDir values are taken from the owner's home.
type Options struct {
	ConfigDir    string
	PluginsDir   string
	IntelliJHome string
	Owner        string
	Group        string
	CheckMode    bool
}

// Provisioner runs operations against a single configuration directory
type Provisioner struct {
	fs           afero.Fs
	configurator *ideconfig.Configurator
	installer    *plugins.Installer
	target       ideconfig.Target
	pluginsDir   string
	ideHome      string
}

// New resolves opts and wires the operations onto afs
func New(afs afero.Fs, inspector *jdk.Inspector, settings plugins.Settings, opts Options) (*Provisioner, error) {
	if strings.TrimSpace(opts.ConfigDir) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a configuration directory is required")
	}

	o, err := owner.Resolve(opts.Owner, opts.Group)
	if err != nil {
		return nil, err
	}
	home, err := owner.HomeDir(o)
	if err != nil {
		return nil, err
	}

	configDir, err := paths.ResolveUnder(home, opts.ConfigDir)
	if err != nil {
		return nil, err
	}

	pluginsDir := paths.NewIDE(configDir).PluginsDir()
	if opts.PluginsDir != "" {
		if pluginsDir, err = paths.ResolveUnder(home, opts.PluginsDir); err != nil {
			return nil, err
		}
	}

	ideHome, err := paths.ExpandHome(opts.IntelliJHome)
	if err != nil {
		return nil, err
	}

	return &Provisioner{
		fs:           afs,
		configurator: ideconfig.New(afs, inspector),
		installer:    plugins.NewInstaller(afs, settings),
		target: ideconfig.Target{
			ConfigDir: configDir,
			Owner:     o,
			CheckMode: opts.CheckMode,
		},
		pluginsDir: pluginsDir,
		ideHome:    ideHome,
	}, nil
}

// ConfigDir is the resolved configuration directory
func (p *Provisioner) ConfigDir() string { return p.target.ConfigDir }

// PluginsDir is the resolved plugins directory
func (p *Provisioner) PluginsDir() string { return p.pluginsDir }

func (p *Provisioner) ConfigureJDK(ctx context.Context, name, home string) (*types.Result, error) {
	home, err := paths.ExpandHome(home)
	if err != nil {
		return nil, err
	}
	return p.configurator.ConfigureJDK(ctx, p.target, name, home)
}

func (p *Provisioner) SetDefaultJDK(ctx context.Context, name string) (*types.Result, error) {
	return p.configurator.SetDefaultJDK(ctx, p.target, name)
}

func (p *Provisioner) SetDefaultInspectionProfile(_ context.Context, profile string) (*types.Result, error) {
	return p.configurator.SetDefaultInspectionProfile(p.target, profile)
}

func (p *Provisioner) SetDefaultMaven(_ context.Context, mavenHome string) (*types.Result, error) {
	mavenHome, err := paths.ExpandHome(mavenHome)
	if err != nil {
		return nil, err
	}
	return p.configurator.SetDefaultMaven(p.target, mavenHome)
}

func (p *Provisioner) DisablePlugins(_ context.Context, ids []string) (*types.Result, error) {
	return p.configurator.DisablePlugins(p.target, ids)
}

// InstallPlugin installs pluginID for the IDE at the configured IntelliJ home
func (p *Provisioner) InstallPlugin(ctx context.Context, pluginID string) (*types.Result, error) {
	if p.ideHome == "" {
		return nil, errors.New(errors.ErrInvalidInput, "the IntelliJ home is required to install plugins")
	}
	return p.installer.Install(ctx, plugins.InstallOptions{
		IDEHome:    p.ideHome,
		PluginsDir: p.pluginsDir,
		PluginID:   pluginID,
		Owner:      p.target.Owner,
		CheckMode:  p.target.CheckMode,
	})
}
