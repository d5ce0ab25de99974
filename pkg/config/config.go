package config

import (
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/plugins"
)

// Config is the full ideaprov configuration
type Config struct {
	Plugins PluginsConfig `koanf:"plugins"`
}

// PluginsConfig controls plugin lookup and download
type PluginsConfig struct {
	ManagerURL      string        `koanf:"manager_url"`
	DownloadCache   string        `koanf:"download_cache"`
	HeadTimeout     time.Duration `koanf:"head_timeout"`
	DownloadTimeout time.Duration `koanf:"download_timeout"`
	Attempts        int           `koanf:"attempts"`
	RetryDelay      time.Duration `koanf:"retry_delay"`
	UserAgent       string        `koanf:"user_agent"`
}

// Settings converts the section into the form the plugins package consumes
func (p PluginsConfig) Settings() plugins.Settings {
	return plugins.Settings{
		ManagerURL:      p.ManagerURL,
		DownloadCache:   p.DownloadCache,
		HeadTimeout:     p.HeadTimeout,
		DownloadTimeout: p.DownloadTimeout,
		Attempts:        p.Attempts,
		RetryDelay:      p.RetryDelay,
		UserAgent:       p.UserAgent,
	}
}

// Validate reports every invalid value at once
func (c *Config) Validate() error {
	var result *multierror.Error

	p := c.Plugins
	if u, err := url.Parse(p.ManagerURL); err != nil || !u.IsAbs() || u.Host == "" {
		result = multierror.Append(result, errors.Newf(errors.ErrConfigValid,
			"plugins.manager_url must be an absolute URL, got %q", p.ManagerURL))
	}
	if p.Attempts < 1 {
		result = multierror.Append(result, errors.Newf(errors.ErrConfigValid,
			"plugins.attempts must be at least 1, got %d", p.Attempts))
	}
	if p.HeadTimeout <= 0 {
		result = multierror.Append(result, errors.New(errors.ErrConfigValid, "plugins.head_timeout must be positive"))
	}
	if p.DownloadTimeout <= 0 {
		result = multierror.Append(result, errors.New(errors.ErrConfigValid, "plugins.download_timeout must be positive"))
	}
	if p.RetryDelay < 0 {
		result = multierror.Append(result, errors.New(errors.ErrConfigValid, "plugins.retry_delay must not be negative"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
	}
	return nil
}
