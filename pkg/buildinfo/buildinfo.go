// Package buildinfo reports which build of the hivemeta tools is running.
//
// Release builds inject the version, commit and date with -ldflags and hand
// them to Set from main. Development builds from a git checkout fall back to
// the VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Info holds the resolved build metadata.
type Info struct {
	Version  string // "v1.2.3", or "dev"
	Commit   string // full git commit hash, or "unknown"
	Date     string // RFC3339 build or commit date, or "unknown"
	Modified bool   // the working tree had uncommitted changes
	GoVer    string
}

// String renders the info on one line, as printed by --version.
func (i Info) String() string {
	commit := i.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if i.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", i.Version, commit, i.Date, i.GoVer)
}

var (
	injected struct {
		version, commit, date string
	}

	once   sync.Once
	cached Info
)

// Set stores the values injected with -ldflags, for example
//
//	go build -ldflags "-X main.version=v1.2.3 -X main.commit=$(git rev-parse HEAD)"
//
// Call it from main before the first Get.
func Set(version, commit, date string) {
	injected.version = version
	injected.commit = commit
	injected.date = date
}

// Get returns the build info, computed once. Injected values win over the
// VCS settings.
func Get() Info {
	once.Do(func() {
		cached = resolve(debug.ReadBuildInfo())
	})
	return cached
}

func resolve(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	if ok {
		info.GoVer = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Commit = s.Value
			case "vcs.time":
				info.Date = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
	}

	if injected.version != "" {
		info.Version = injected.version
	}
	if injected.commit != "" {
		info.Commit = injected.commit
	}
	if injected.date != "" {
		info.Date = injected.date
	}
	return info
}
