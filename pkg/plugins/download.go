package plugins

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/filesystem"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Downloader fetches plugin archives into the download cache
type Downloader struct {
	fs       afero.Fs
	settings Settings
	client   *http.Client
	logger   zerolog.Logger
}

func NewDownloader(afs afero.Fs, settings Settings) *Downloader {
	return &Downloader{
		fs:       afs,
		settings: settings,
		client:   &http.Client{Timeout: settings.DownloadTimeout},
		logger:   logging.GetLogger("plugins.download"),
	}
}

// Fetch downloads pluginURL to DownloadCache/fileName and returns the path.
// An existing file is reused without contacting the server.
func (d *Downloader) Fetch(ctx context.Context, pluginURL, fileName string) (string, error) {
	cache := d.settings.DownloadCache
	if err := d.fs.MkdirAll(cache, filesystem.DirMode); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "cannot create download cache %s", cache)
	}

	dest := filepath.Join(cache, fileName)
	if filesystem.IsFile(d.fs, dest) {
		d.logger.Debug().Str("path", dest).Msg("Using cached download")
		return dest, nil
	}

	// failed downloads are retried straight away; RetryDelay only paces manager queries
	d.logger.Debug().Str("url", pluginURL).Msg("Starting download")
	err := retry(ctx, d.logger, pluginURL, d.settings.Attempts, 0, func() error {
		return d.fetchOnce(ctx, pluginURL, fileName)
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDownload, "Error downloading url \"%s\"", pluginURL)
	}

	d.logger.Info().Str("path", dest).Msg("Download complete")
	return dest, nil
}

func (d *Downloader) fetchOnce(ctx context.Context, pluginURL, fileName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pluginURL, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrHTTP, "failed to create HTTP request")
	}
	req.Header.Set("User-Agent", d.settings.UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrHTTP, "failed to perform HTTP request")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.logger.Warn().Err(cerr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Newf(errors.ErrHTTP, "unexpected HTTP status: %d", resp.StatusCode)
	}

	_, err = filesystem.WriteAtomic(d.fs, d.settings.DownloadCache, fileName, resp.Body)
	return err
}
