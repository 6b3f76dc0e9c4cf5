// Package version exposes build metadata stamped at link time.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set via ldflags at release build time.
var Version string

// Get returns the release version. Builds made without ldflags fall back
// to VCS revision metadata.
func Get() string {
	if Version != "" {
		return Version
	}

	return revision()
}

// Info returns a human readable version line for --version output.
func Info() string {
	return fmt.Sprintf("%s (%s/%s, %s)", Get(), runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	rev := "unknown"
	modified := false

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}

		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		rev += "-dirty"
	}

	return rev
}
