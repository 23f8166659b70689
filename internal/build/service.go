package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// BuildService is the canonical interface for executing builds. The CLI and
// the watcher are thin wrappers over it.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	Config *config.Config

	// OutputDir overrides cfg.Output.Directory when set.
	OutputDir string

	Options BuildOptions
}

// BuildOptions provides optional configuration for build behavior.
type BuildOptions struct {
	// DryRun runs every check but writes nothing.
	DryRun bool

	// Pretty indents JSON output. It is also enabled by output.pretty.
	Pretty bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status     BuildStatus
	BuildID    string
	OutputPath string

	Pages    int
	Orphans  []string
	Warnings []nav.Warning

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusWarning   BuildStatus = "warning"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)
