package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/booknav/internal/build"
	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/logfields"
	"git.home.luguber.info/inful/booknav/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory; overrides output.directory"`
	DryRun bool   `name:"dry-run" help:"Validate and render without writing output"`
	Pretty bool   `help:"Indent the generated JSON"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	return RunBuild(g.context(), g.out(), cfg, build.BuildRequest{
		Config:    cfg,
		OutputDir: b.Output,
		Options:   build.BuildOptions{DryRun: b.DryRun, Pretty: b.Pretty},
	})
}

// RunBuild runs one build and reports it on out. When metrics.textfile is
// configured the metrics are written whether or not the build succeeded.
func RunBuild(ctx context.Context, out io.Writer, cfg *config.Config, req build.BuildRequest) error {
	svc := build.NewBuildService()
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(prom)
	}

	result, err := svc.Run(ctx, req)
	if prom != nil {
		if werr := prom.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			slog.Warn("failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	where := result.OutputPath
	if req.Options.DryRun {
		where = "(dry run)"
	}
	fmt.Fprintf(out, "%s: %d pages, %d warnings, %d orphans -> %s\n",
		result.Status, result.Pages, len(result.Warnings), len(result.Orphans), where)
	return nil
}
