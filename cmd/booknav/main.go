package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/booknav/cmd/booknav/commands"
	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("booknav"),
		kong.Description("Build and validate the sidebar navigation of a Starlight book site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Logger: slog.Default(), Ctx: ctx, Out: os.Stdout}, cli)
	stop()

	berrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
