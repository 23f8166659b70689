package commands

import (
	"context"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/booknav/internal/build"
	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory; overrides output.directory"`
	Debounce time.Duration `default:"300ms" help:"Quiet period before a rebuild"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	return w.watcher(g, root, cfg).Run(g.context())
}

// watcher follows the content directory of the initial configuration. The
// configuration itself is reread before every rebuild.
func (w *WatchCmd) watcher(g *Global, root *CLI, cfg *config.Config) *watch.Watcher {
	files := []string{root.Config}
	for _, dir := range []string{filepath.Dir(root.Config), "."} {
		files = append(files, filepath.Join(dir, ".env"), filepath.Join(dir, ".env.local"))
	}
	return &watch.Watcher{
		Roots:    []string{cfg.Content.Dir},
		Files:    files,
		Debounce: w.Debounce,
		Rebuild: func(ctx context.Context) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			return RunBuild(ctx, g.out(), cfg, build.BuildRequest{Config: cfg, OutputDir: w.Output})
		},
	}
}
