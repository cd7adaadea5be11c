package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/Duckilicious/sggit/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/Duckilicious/sggit/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/Duckilicious/sggit/internal/version.Date={{.Date}}
)
