// Package commands implements the booknav subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/observability"
)

// Global is shared state handed to every subcommand.
type Global struct {
	Logger *slog.Logger
	Ctx    context.Context
	Out    io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"booknav.yaml" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogLevel  string           `name:"log-level" help:"Log level (debug|info|warn|error); overrides logging.level"`
	LogFormat string           `name:"log-format" help:"Log format (text|json); overrides logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the configuration, sidebar and content"`
	Build    BuildCmd    `cmd:"" help:"Build the navigation and page models into the output directory"`
	Render   RenderCmd   `cmd:"" help:"Show the sidebar as rendered for one page"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild whenever the configuration or content changes"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; the logger is replaced once the
// configuration has been read.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(c.logger(config.LogLevelInfo, config.LogFormatText))
	return nil
}

// logger applies the logging flags on top of the configured values;
// --verbose wins over --log-level.
func (c *CLI) logger(level config.LogLevel, format config.LogFormat) *slog.Logger {
	if c.LogLevel != "" {
		level = config.NormalizeLogLevel(c.LogLevel)
	}
	lvl := level.SlogLevel()
	if c.Verbose {
		lvl = slog.LevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	return observability.NewLogger(os.Stderr, lvl, format == config.LogFormatJSON)
}

// loadConfig reads the configuration and reconfigures logging from it.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(c.logger(cfg.Logging.Level, cfg.Logging.Format))
	return cfg, nil
}
