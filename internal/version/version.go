package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/ideaprov/ideaprov/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/ideaprov/ideaprov/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/ideaprov/ideaprov/internal/version.Date={{.Date}}
)
