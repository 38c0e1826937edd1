// Package build reports the wnsim build, stamped at link time:
//
//	go build -ldflags "-X github.com/cognicore/wnsim/internal/build.Version=v0.3.0 \
//	  -X github.com/cognicore/wnsim/internal/build.Commit=$(git rev-parse --short HEAD)"
package build

import "strings"

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String renders the version with whatever commit and date were stamped,
// e.g. "v0.3.0 (4f2a9c1, 2026-10-14)".
func String() string {
	var extra []string
	if Commit != "" {
		extra = append(extra, Commit)
	}
	if Date != "" {
		extra = append(extra, Date)
	}
	if len(extra) == 0 {
		return Version
	}
	return Version + " (" + strings.Join(extra, ", ") + ")"
}
