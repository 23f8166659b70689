// Package watch rebuilds the site when the configuration or content changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/booknav/internal/logfields"
)

// DefaultDebounce is the quiet period before a rebuild starts.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one build. Its error is logged; watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher triggers Rebuild on changes below Roots and on writes to Files.
// Roots are watched recursively; for each entry of Files only that file in
// its directory is of interest.
type Watcher struct {
	Roots    []string
	Files    []string
	Debounce time.Duration
	Rebuild  RebuildFunc

	files map[string]bool
}

// Run builds once, then rebuilds after each burst of changes until ctx is
// cancelled. At most one rebuild runs at a time; changes arriving during a
// rebuild queue exactly one more.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return errors.New("watch: Rebuild is required")
	}
	fw, err := w.setup()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	rebuildReq := make(chan struct{}, 1)
	rebuildReq <- struct{}{}
	deb := newDebouncer(delay, func() {
		select {
		case rebuildReq <- struct{}{}:
		default:
		}
	})
	defer deb.stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-rebuildReq:
				w.rebuild(ctx)
			}
		}
	}()
	defer wg.Wait()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("watch stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, deb.trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	start := time.Now()
	err := w.Rebuild(ctx)
	ms := float64(time.Since(start).Microseconds()) / 1000
	switch {
	case err == nil:
		slog.Info("rebuild complete", logfields.DurationMS(ms))
	case ctx.Err() != nil:
	default:
		slog.Warn("rebuild failed", logfields.DurationMS(ms), logfields.Error(err))
	}
}

func (w *Watcher) setup() (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w.files = make(map[string]bool, len(w.Files))
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.files[abs] = true
		// Editors often replace files, so the directory is watched.
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}

	for i, root := range w.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		if _, err := os.Stat(abs); err != nil {
			slog.Warn("watch root unavailable", logfields.Path(abs), logfields.Error(err))
			continue
		}
		w.Roots[i] = abs
		addDirsRecursive(fw, abs)
	}
	return fw, nil
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}
	if !w.files[abs] && (shouldIgnoreEvent(abs) || !w.underRoot(abs)) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
			addDirsRecursive(fw, abs)
		}
	}
	slog.Debug("change detected", logfields.Path(abs), logfields.Op(ev.Op.String()))
	trigger()
}

func (w *Watcher) underRoot(path string) bool {
	for _, r := range w.Roots {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent reports hidden, editor swap and OS metadata files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db":
		return true
	}
	return false
}

// debouncer fires once after calls to trigger stop for the delay.
type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fire  func()
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
