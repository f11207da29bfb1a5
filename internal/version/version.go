// Package version exposes build metadata, set by -ldflags at release
// time and recovered from build info otherwise.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag, overridden via
	// -ldflags "-X github.com/yabelyaev/N3xFin/internal/version.Version=v1.2.3".
	Version = "dev"

	// Commit is the short git hash of the build.
	Commit = ""

	// BuildDate is the build timestamp.
	BuildDate = ""
)

// Info is the structured version payload served by /api/health.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
}

// Get assembles the version info, filling the commit from embedded
// build info when ldflags did not set it.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.Commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					info.Commit = s.Value[:7]
				}
			}
		}
	}
	return info
}

// String renders the version for logs and --version output.
func (i Info) String() string {
	if i.Commit == "" {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, i.Commit)
}
