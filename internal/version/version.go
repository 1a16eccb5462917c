// Package version reports build information for the lightbulb binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the program name printed in front of every version string.
const Name = "lightbulb"

// Build-time variables set via ldflags.
// Example: go build -ldflags="-X github.com/andywolf/lightbulb/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// vcs returns the commit and build date, falling back to the VCS stamp the
// go tool embeds when ldflags did not set them.
func vcs() (commit, date string) {
	commit, date = Commit, BuildDate
	if commit != "unknown" && date != "unknown" {
		return commit, date
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, date
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "unknown":
			commit = s.Value
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return commit, date
}

// Short returns the version string (e.g., "v1.2.3" or "dev").
func Short() string {
	return Version
}

// Info returns a single-line version string.
// Format: "lightbulb v1.2.3 (commit: abc1234, built: 2024-01-15T10:30:00Z, go: go1.24.x)"
func Info() string {
	commit, date := vcs()
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s %s (commit: %s, built: %s, go: %s)",
		Name, Version, commit, date, runtime.Version())
}

// Full returns a multi-line verbose version output.
func Full() string {
	commit, date := vcs()
	return fmt.Sprintf(`%s %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s/%s`,
		Name, Version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
