package plugins

import "time"

// DefaultManagerURL is the public JetBrains plugin repository endpoint
const DefaultManagerURL = "https://plugins.jetbrains.com/pluginManager/"

// Settings tune how plugins are located and fetched
type Settings struct {
	ManagerURL      string
	DownloadCache   string
	HeadTimeout     time.Duration
	DownloadTimeout time.Duration
	Attempts        int
	// RetryDelay is the pause between plugin manager queries
	RetryDelay      time.Duration
	UserAgent       string
}

// DefaultSettings mirrors the shipped configuration defaults
func DefaultSettings() Settings {
	return Settings{
		ManagerURL:      DefaultManagerURL,
		HeadTimeout:     3 * time.Second,
		DownloadTimeout: 20 * time.Second,
		Attempts:        3,
		RetryDelay:      5 * time.Second,
		UserAgent:       "ideaprov",
	}
}
