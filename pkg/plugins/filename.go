package plugins

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
)

var (
	jarPattern       = regexp.MustCompile(`/([^/]+\.jar)$`)
	versionedPattern = regexp.MustCompile(`/([0-9]+)/([0-9]+)/([^/]+)$`)
)

// FileName picks the cache file name for a plugin download URL.
//
//	.../NAME.jar?query            -> NAME.jar
//	.../PLUGIN/UPDATE/NAME?query  -> PLUGIN-UPDATE-NAME
//	anything else                 -> ID-sha256(url).zip
//
// Only the URL path is matched, so the query string is optional: a CDN link
// ending in NAME.jar with no query still maps to NAME.jar.
func FileName(pluginURL, pluginID string) string {
	if u, err := url.Parse(pluginURL); err == nil {
		if m := jarPattern.FindStringSubmatch(u.Path); m != nil {
			return m[1]
		}
		if m := versionedPattern.FindStringSubmatch(u.Path); m != nil {
			return m[1] + "-" + m[2] + "-" + m[3]
		}
	}

	sum := sha256.Sum256([]byte(pluginURL))
	return pluginID + "-" + hex.EncodeToString(sum[:]) + ".zip"
}
