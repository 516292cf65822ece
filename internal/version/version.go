// Package version identifies the userdeck build, both for the version
// command and for the User-Agent sent to user directories.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Release builds stamp these with
//
//	-ldflags="-X github.com/muurk/userdeck/internal/version.Version=v1.2.3 \
//	          -X github.com/muurk/userdeck/internal/version.Commit=abc123"
var (
	Version = ""
	Commit  = ""
)

// AppName is the binary and User-Agent product name.
const AppName = "userdeck"

const shortHash = 7

func init() {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	Version, Commit = stamp(Version, Commit, settings, time.Now())
}

// stamp fills whichever of version and commit the linker left empty,
// first from the VCS settings and then from now.
func stamp(version, commit string, settings []debug.BuildSetting, now time.Time) (string, string) {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if commit == "" {
		if rev := vcs["vcs.revision"]; rev != "" {
			if len(rev) > shortHash {
				rev = rev[:shortHash]
			}
			if vcs["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			commit = rev
		} else {
			commit = "unknown"
		}
	}

	if version == "" {
		// No tags in build info; a dated dev build is the best we can do.
		if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			version = "dev-" + t.Format("20060102")
		} else {
			version = "dev-" + now.Format("20060102-150405")
		}
	}
	return version, commit
}

// Full returns the version with its commit, as printed by `userdeck version`.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent returns the User-Agent header value sent to user directories.
func UserAgent() string {
	return AppName + "/" + Version
}
