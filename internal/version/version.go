package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/openmsx/openmsx-install/internal/version.Version=...
	Commit  = "unknown" // -X github.com/openmsx/openmsx-install/internal/version.Commit=...
	Date    = "unknown" // -X github.com/openmsx/openmsx-install/internal/version.Date=...
)

// String formats the build information for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
