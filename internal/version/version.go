// Package version reports build metadata set at link time:
//
//	go build -ldflags "-X github.com/keshon/simplebot/internal/version.Version=1.0.0"
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

const modulePath = "github.com/keshon/simplebot"

var (
	// Version is the version of the bot built on top of the framework.
	Version = "dev"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Framework returns the version of the simplebot module compiled into the
// binary, without the leading "v".
func Framework() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	return frameworkFrom(info)
}

func frameworkFrom(info *debug.BuildInfo) string {
	mod := &info.Main
	if mod.Path != modulePath {
		mod = nil
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				mod = dep
				break
			}
		}
	}
	if mod == nil || mod.Version == "" || mod.Version == "(devel)" {
		return "dev"
	}
	return strings.TrimPrefix(mod.Version, "v")
}

// GoVersion returns the Go runtime version.
func GoVersion() string {
	return runtime.Version()
}
