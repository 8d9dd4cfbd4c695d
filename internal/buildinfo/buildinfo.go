// Package buildinfo holds the build metadata of the lazyselect binary. The
// linker sets the variables in cmd/lazyselect, which forwards them with Set.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

const (
	defaultVersion = "dev"
	defaultCommit  = "none"
	unknown        = "unknown"
)

var (
	version = defaultVersion
	commit  = defaultCommit
	date    = unknown
	builtBy = unknown
)

// Set stores the build metadata received from linker-injected variables.
func Set(v, c, d, b string) {
	version, commit, date, builtBy = v, c, d, b
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// Date returns the build date string.
func Date() string { return date }

// BuiltBy returns the build agent string.
func BuiltBy() string { return builtBy }

// Enrich fills a missing commit from the VCS revision and a missing builder
// from the Go version recorded in the binary.
func Enrich() {
	if commit != defaultCommit && builtBy != unknown {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	enrich(info)
}

func enrich(info *debug.BuildInfo) {
	if commit == defaultCommit {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				commit = setting.Value
			}
		}
	}
	if builtBy == unknown && info.GoVersion != "" {
		builtBy = info.GoVersion
	}
}

// Summary is the text printed by --version.
func Summary(name string) string {
	return fmt.Sprintf("%s version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n", name, version, commit, date, builtBy)
}
