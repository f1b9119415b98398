// Package version reports which build of nearestcolour is running.
//
// Release builds set Version, Commit and Date with -ldflags "-X ...". Builds
// without them, such as go install or go run, fall back to the module version
// and VCS stamps embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at link time, e.g.
// -X github.com/jmylchreest/nearestcolour/internal/version.Version=1.2.0
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const unknown = "unknown"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Workers   int    `json:"default_workers"`
}

// Get resolves the build information of the running binary.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	info := resolve(Version, Commit, Date, bi)
	info.Platform = runtime.GOOS + "/" + runtime.GOARCH
	info.Workers = runtime.GOMAXPROCS(0)
	return info
}

// resolve prefers link-time values and fills the gaps from bi, which may be
// nil.
func resolve(ver, commit, date string, bi *debug.BuildInfo) Info {
	info := Info{Version: ver, Commit: commit, Date: date, GoVersion: runtime.Version()}
	if bi != nil {
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = strings.TrimPrefix(bi.Main.Version, "v")
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = unknown
	}
	if info.Date == "" {
		info.Date = unknown
	}
	return info
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nearestcolour version %s (", i.Version)
	if i.Commit != unknown {
		fmt.Fprintf(&b, "commit: %s", i.ShortCommit())
		if i.Modified {
			b.WriteString("-dirty")
		}
		b.WriteString(", ")
	}
	if i.Date != unknown {
		fmt.Fprintf(&b, "built: %s, ", i.Date)
	}
	fmt.Fprintf(&b, "%s, %s, %d workers)", i.GoVersion, i.Platform, i.Workers)
	return b.String()
}

// String returns the one-line description printed by the version command.
func String() string {
	return Get().String()
}

// Short returns just the version number.
func Short() string {
	return Get().Version
}
