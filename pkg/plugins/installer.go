package plugins

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/ideaprov/ideaprov/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// InstallOptions describe one plugin installation
type InstallOptions struct {
	// IDEHome is the IDE installation directory, used for the build number
	IDEHome    string
	PluginsDir string
	PluginID   string
	Owner      *types.Owner
	CheckMode  bool
}

// Installer ties the manager, the download cache and the plugins directory
type Installer struct {
	fs         afero.Fs
	manager    *Manager
	downloader *Downloader
	logger     zerolog.Logger
}

func NewInstaller(afs afero.Fs, settings Settings) *Installer {
	return &Installer{
		fs:         afs,
		manager:    NewManager(settings),
		downloader: NewDownloader(afs, settings),
		logger:     logging.GetLogger("plugins"),
	}
}

// Install makes sure opts.PluginID is present in opts.PluginsDir. In check
// mode the archive is still downloaded but the plugins directory is left
// untouched.
func (i *Installer) Install(ctx context.Context, opts InstallOptions) (*types.Result, error) {
	defer logging.LogOperationStart(i.logger, "install-plugin")()

	build, err := BuildNumber(i.fs, opts.IDEHome)
	if err != nil {
		return nil, err
	}
	branch, err := Branch(build)
	if err != nil {
		return nil, err
	}
	i.logger.Debug().Str("build", build).Int("branch", branch).Msg("IDE build detected")

	pluginURL, err := i.manager.Resolve(ctx, build, opts.PluginID)
	if err != nil {
		return nil, err
	}

	archive, err := i.downloader.Fetch(ctx, pluginURL, FileName(pluginURL, opts.PluginID))
	if err != nil {
		return nil, err
	}

	changed, err := i.place(archive, opts)
	if err != nil {
		return nil, err
	}

	return types.NewResult(changed,
		fmt.Sprintf("Plugin \"%s\" has been installed", opts.PluginID),
		fmt.Sprintf("Plugin \"%s\" was already installed", opts.PluginID),
		nil), nil
}

func (i *Installer) place(archive string, opts InstallOptions) (bool, error) {
	if !opts.CheckMode {
		if err := filesystem.MakeDirs(i.fs, opts.PluginsDir, filesystem.DirMode, opts.Owner); err != nil {
			return false, err
		}
	}

	if strings.EqualFold(filepath.Ext(archive), ".jar") {
		dest := filepath.Join(opts.PluginsDir, filepath.Base(archive))
		if filesystem.Exists(i.fs, dest) {
			return false, nil
		}
		if !opts.CheckMode {
			if err := filesystem.CopyFile(i.fs, archive, dest, filesystem.FileMode, opts.Owner); err != nil {
				return false, err
			}
			i.logger.Info().Str("path", dest).Msg("Plugin jar installed")
		}
		return true, nil
	}

	root, err := RootDir(i.fs, archive)
	if err != nil {
		return false, err
	}
	if filesystem.Exists(i.fs, filepath.Join(opts.PluginsDir, root)) {
		return false, nil
	}
	if !opts.CheckMode {
		if err := Extract(i.fs, archive, opts.PluginsDir, opts.Owner); err != nil {
			return false, err
		}
		i.logger.Info().Str("path", filepath.Join(opts.PluginsDir, root)).Msg("Plugin extracted")
	}
	return true, nil
}
