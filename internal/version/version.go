package version

import (
	"fmt"
	"runtime/debug"
)

// Version information for alt
const (
	// Version is the current semantic version of alt
	Version = "0.1.0"
)

// Set during build time (use -ldflags -X)
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns version information as a string
func Info() string {
	return Version
}

// Banner is the line printed for --version
func Banner() string {
	return fmt.Sprintf("alt v%s", Version)
}

// FullInfo returns detailed version information, filling the commit from
// embedded VCS settings when the binary was not built with ldflags.
func FullInfo() string {
	commit := GitCommit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}
	return "alt " + Version + " (commit: " + commit + ", built: " + BuildDate + ")"
}
