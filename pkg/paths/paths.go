package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ideaprov/ideaprov/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for ideaprov
	EnvConfigDir = "IDEAPROV_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for ideaprov
	EnvCacheDir = "IDEAPROV_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for ideaprov
	EnvStateDir = "IDEAPROV_STATE_DIR"
)

// Tool directories and files. These are not user-configurable.
const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "ideaprov"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// DownloadsDir is the cache subdirectory for plugin archives
	DownloadsDir = "downloads"

	// LogFileName is the name of the log file
	LogFileName = "ideaprov.log"
)

// Paths provides the tool's own directories
type Paths interface {
	ConfigDir() string
	CacheDir() string
	StateDir() string
	ConfigFilePath() string
	DownloadCacheDir() string
	LogFilePath() string
}

type paths struct {
	configDir string
	cacheDir  string
	stateDir  string
}

// New resolves the XDG directories, honouring the IDEAPROV_* overrides.
func New() Paths {
	return &paths{
		configDir: dirFromEnv(EnvConfigDir, filepath.Join(xdg.ConfigHome, AppDirName)),
		cacheDir:  dirFromEnv(EnvCacheDir, filepath.Join(xdg.CacheHome, AppDirName)),
		stateDir:  dirFromEnv(EnvStateDir, filepath.Join(xdg.StateHome, AppDirName)),
	}
}

func dirFromEnv(name, fallback string) string {
	if dir := os.Getenv(name); dir != "" {
		if expanded, err := ExpandHome(dir); err == nil {
			return expanded
		}
		return dir
	}
	return fallback
}

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) CacheDir() string { return p.cacheDir }

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// DownloadCacheDir is the default cache for downloaded plugin archives
func (p *paths) DownloadCacheDir() string {
	return filepath.Join(p.cacheDir, DownloadsDir)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// LogFilePath returns the log file location without building a Paths first.
// Logging is set up before anything else so it cannot wait for config.
func LogFilePath() string {
	return New().LogFilePath()
}

// ExpandHome expands a leading ~ or ~user to the matching home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	name, rest, _ := strings.Cut(path[1:], string(filepath.Separator))

	var home string
	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
		}
		home = dir
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrOwnerLookup, "cannot expand %s", path)
		}
		home = u.HomeDir
	}

	if rest == "" {
		return home, nil
	}
	return filepath.Join(home, rest), nil
}

// ResolveUnder expands ~ in path and anchors relative results under base.
func ResolveUnder(base, path string) (string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(expanded) || base == "" {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}
