package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// Build-time variables injected via -ldflags:
//
//	-X github.com/tbckr/catalog/internal/version.Version=1.0.0
//	-X github.com/tbckr/catalog/internal/version.Commit=abc1234
//	-X github.com/tbckr/catalog/internal/version.Date=2024-01-01
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the resolved build identity.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// String renders the identity the way `catalog version` prints it.
func (i Info) String() string {
	return fmt.Sprintf("catalog version %s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}

var buildInfo = sync.OnceValue(func() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = resolve(info, bi)
	}
	return info
})

// Get returns the build identity, reading debug.BuildInfo at most once.
func Get() Info {
	return buildInfo()
}

// resolve fills placeholder fields of info from bi. ldflags always win.
func resolve(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = strings.TrimPrefix(v, "v")
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if info.Date == "unknown" && s.Value != "" {
				info.Date = s.Value
			}
		}
	}
	return info
}
