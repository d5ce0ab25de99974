package plugins

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"
	"github.com/ideaprov/ideaprov/pkg/errors"
	"github.com/ideaprov/ideaprov/pkg/logging"
	"github.com/rs/zerolog"
)

// Manager asks the plugin manager where a plugin can be downloaded
type Manager struct {
	settings Settings
	client   *http.Client
	logger   zerolog.Logger
}

// NewManager creates a Manager. Redirects are never followed; the redirect
// target is the answer.
func NewManager(settings Settings) *Manager {
	return &Manager{
		settings: settings,
		client: &http.Client{
			Timeout: settings.HeadTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logging.GetLogger("plugins.manager"),
	}
}

// QueryURL is the manager URL asking for pluginID on build
func (m *Manager) QueryURL(build, pluginID string) string {
	params := url.Values{}
	params.Set("action", "download")
	params.Set("build", build)
	params.Set("id", pluginID)
	return m.settings.ManagerURL + "?" + params.Encode()
}

// Resolve returns the download URL of pluginID for the given build
func (m *Manager) Resolve(ctx context.Context, build, pluginID string) (string, error) {
	query := m.QueryURL(build, pluginID)
	m.logger.Debug().Str("url", query).Msg("Querying plugin manager")

	var resp *http.Response
	err := retry(ctx, m.logger, query, m.settings.Attempts, m.settings.RetryDelay, func() error {
		r, err := m.head(ctx, query)
		if err != nil {
			return err
		}
		if r.StatusCode == http.StatusNotFound {
			return backoff.Permanent(errors.Newf(errors.ErrPluginNotFound,
				"Unable to find plugin \"%s\" for build \"%s\"", pluginID, build))
		}
		if r.StatusCode >= 400 {
			return errors.Newf(errors.ErrHTTP, "HTTP Error %d: %s", r.StatusCode, http.StatusText(r.StatusCode))
		}
		resp = r
		return nil
	})
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrPluginNotFound) {
			return "", err
		}
		return "", errors.Wrapf(err, errors.ErrHTTP, "Error querying url \"%s\"", query)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.Newf(errors.ErrHTTP, "Unsupported HTTP response for: %s (status=%d)", query, resp.StatusCode)
	}

	pluginURL, err := m.absolute(location)
	if err != nil {
		return "", err
	}
	m.logger.Info().Str("plugin", pluginID).Str("url", pluginURL).Msg("Plugin located")
	return pluginURL, nil
}

func (m *Manager) head(ctx context.Context, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrapf(err, errors.ErrInvalidInput, "invalid url %s", target))
	}
	req.Header.Set("User-Agent", m.settings.UserAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()
	return resp, nil
}

func (m *Manager) absolute(location string) (string, error) {
	loc, err := url.Parse(location)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHTTP, "invalid redirect location %q", location)
	}
	if loc.IsAbs() {
		return loc.String(), nil
	}
	base, err := url.Parse(m.settings.ManagerURL)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid plugin manager url %q", m.settings.ManagerURL)
	}
	return base.ResolveReference(loc).String(), nil
}
