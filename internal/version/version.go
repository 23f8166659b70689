// Package version reports the booknav build identity. The variables are set
// at link time:
//
//	go build -ldflags "-X git.home.luguber.info/inful/booknav/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the line printed by --version.
func String() string {
	return fmt.Sprintf("booknav %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
