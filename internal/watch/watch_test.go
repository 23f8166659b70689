package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	builds chan struct{}
	done   chan error
	cancel context.CancelFunc
}

func start(t *testing.T, w *Watcher) *harness {
	t.Helper()
	h := &harness{builds: make(chan struct{}, 16), done: make(chan error, 1)}
	w.Debounce = 20 * time.Millisecond
	w.Rebuild = func(context.Context) error {
		h.builds <- struct{}{}
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	h.expectBuild(t, "initial build")
	return h
}

func (h *harness) expectBuild(t *testing.T, why string) {
	t.Helper()
	select {
	case <-h.builds:
	case <-time.After(5 * time.Second):
		t.Fatalf("no rebuild: %s", why)
	}
}

func (h *harness) expectQuiet(t *testing.T, why string) {
	t.Helper()
	select {
	case <-h.builds:
		t.Fatalf("unexpected rebuild: %s", why)
	case <-time.After(200 * time.Millisecond):
	}
}

func touch(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestWatcher_RebuildsOnContentChange(t *testing.T) {
	docs := t.TempDir()
	h := start(t, &Watcher{Roots: []string{docs}})

	touch(t, filepath.Join(docs, "c01.md"), "# one\n")
	h.expectBuild(t, "new page")
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	docs := t.TempDir()
	h := start(t, &Watcher{Roots: []string{docs}})

	for i := 0; i < 5; i++ {
		touch(t, filepath.Join(docs, "c01.md"), string(rune('a'+i)))
	}
	h.expectBuild(t, "burst")
	h.expectQuiet(t, "burst should produce one rebuild")
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	docs := t.TempDir()
	h := start(t, &Watcher{Roots: []string{docs}})

	sub := filepath.Join(docs, "guides")
	require.NoError(t, os.Mkdir(sub, 0o750))
	h.expectBuild(t, "new directory")

	touch(t, filepath.Join(sub, "setup.md"), "# setup\n")
	h.expectBuild(t, "file in new directory")
}

func TestWatcher_IgnoresHiddenAndSwapFiles(t *testing.T) {
	docs := t.TempDir()
	h := start(t, &Watcher{Roots: []string{docs}})

	touch(t, filepath.Join(docs, ".c01.md.swp"), "x")
	touch(t, filepath.Join(docs, "c01.md~"), "x")
	h.expectQuiet(t, "editor files")
}

func TestWatcher_ConfigFileOnly(t *testing.T) {
	root := t.TempDir()
	cfg := filepath.Join(root, "booknav.yaml")
	env := filepath.Join(root, ".env")
	touch(t, cfg, "title: x\n")
	h := start(t, &Watcher{Files: []string{cfg, env}})

	touch(t, filepath.Join(root, "README.md"), "unrelated")
	h.expectQuiet(t, "sibling of the config file")

	touch(t, cfg, "title: y\n")
	h.expectBuild(t, "config change")

	touch(t, env, "A=1\n")
	h.expectBuild(t, "env file change")
}

func TestWatcher_RebuildErrorsDoNotStopWatching(t *testing.T) {
	docs := t.TempDir()
	var calls atomic.Int32
	builds := make(chan struct{}, 16)
	w := &Watcher{
		Roots:    []string{docs},
		Debounce: 20 * time.Millisecond,
		Rebuild: func(context.Context) error {
			calls.Add(1)
			builds <- struct{}{}
			return errors.New("duplicate target")
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	<-builds
	touch(t, filepath.Join(docs, "c01.md"), "x")
	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after failure")
	}
	cancel()
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestWatcher_RequiresRebuild(t *testing.T) {
	err := (&Watcher{}).Run(context.Background())
	require.Error(t, err)
}

func TestDebouncer(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	for i := 0; i < 10; i++ {
		d.trigger()
	}
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	d.trigger()
	d.stop()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "stop cancels a pending fire")
}

func TestShouldIgnoreEvent(t *testing.T) {
	tests := map[string]bool{
		"docs/c01.md":      false,
		"docs/.hidden":     true,
		"docs/c01.md~":     true,
		"docs/.c01.md.swp": true,
		"docs/#c01.md#":    true,
		"docs/Thumbs.db":   true,
	}
	for path, want := range tests {
		if got := shouldIgnoreEvent(path); got != want {
			t.Errorf("shouldIgnoreEvent(%q) = %v, want %v", path, got, want)
		}
	}
}
