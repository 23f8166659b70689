package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booknav/internal/config"
	berrors "git.home.luguber.info/inful/booknav/internal/errors"
)

const sidebarYAML = `sidebar:
  - label: Professional C++ 6th
    items:
      - label: Book Overview
        slug: index
  - label: Chapters
    items:
      - label: 01. Crash Course
        slug: c01
      - label: 02. Strings
        slug: c02
`

type project struct {
	root   string
	config string
	docs   string
	dist   string
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

// newProject lays out a small book; extra is appended to the config before
// the sidebar.
func newProject(t *testing.T, extra string) *project {
	t.Helper()
	root := t.TempDir()
	p := &project{
		root:   root,
		config: filepath.Join(root, "booknav.yaml"),
		docs:   filepath.Join(root, "docs"),
		dist:   filepath.Join(root, "dist"),
	}
	writeFile(t, filepath.Join(p.docs, "index.mdx"), "---\ntitle: Professional C++\n---\nWelcome.\n")
	writeFile(t, filepath.Join(p.docs, "c01.md"), "---\ntitle: A Crash Course in C++ and the Standard Library\n---\n## The Basics of C++\n\n### Modules\n")
	writeFile(t, filepath.Join(p.docs, "c02.md"), "---\ntitle: Working with Strings\n---\n## Dynamic Strings\n")

	cfg := "title: Professional C++ 6th\n" +
		"site: https://pcpp.xihale.top\n" +
		"content:\n  dir: " + p.docs + "\n" +
		"output:\n  directory: " + p.dist + "\n" +
		extra + sidebarYAML
	writeFile(t, p.config, cfg)
	return p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("booknav"),
		kong.Vars{"version": "booknav test"},
		kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	err = kctx.Run(&Global{Logger: slog.Default(), Ctx: context.Background(), Out: &out}, &cli)
	return out.String(), err
}

func exitCode(err error) int {
	return berrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err)
}

func TestValidate(t *testing.T) {
	p := newProject(t, "")
	out, err := run(t, "-c", p.config, "validate", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Professional C++ 6th: 2 groups, 3 links")
	assert.Contains(t, out, "Chapters/\n  01. Crash Course -> c01\n")
	assert.True(t, strings.HasSuffix(out, "ok\n"))
}

func TestValidate_RejectedSidebarExitCode(t *testing.T) {
	p := newProject(t, "")
	cfg := strings.Replace(mustRead(t, p.config), "slug: c02", "slug: c01", 1)
	writeFile(t, p.config, cfg)

	_, err := run(t, "-c", p.config, "validate")
	require.Error(t, err)
	assert.True(t, berrors.IsCategory(err, berrors.CategoryNavigation))
	assert.Equal(t, 3, exitCode(err))
}

func TestValidate_MissingPageExitCode(t *testing.T) {
	p := newProject(t, "")
	require.NoError(t, os.Remove(filepath.Join(p.docs, "c02.md")))

	_, err := run(t, "-c", p.config, "validate")
	require.Error(t, err)
	assert.Equal(t, 4, exitCode(err))
}

func TestValidate_Strict(t *testing.T) {
	p := newProject(t, "")
	writeFile(t, filepath.Join(p.docs, "c03.md"), "---\ntitle: Coding with Style\n---\n")

	out, err := run(t, "-c", p.config, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "orphan: c03")

	_, err = run(t, "-c", p.config, "validate", "--strict")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	msg := berrors.NewCLIErrorAdapter(false, nil).FormatError(err)
	assert.Contains(t, msg, "field=sidebar")
	assert.Contains(t, msg, "1 warnings in strict mode")
}

func TestMissingConfigExitCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := run(t, "-c", path, "validate")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))
	assert.Contains(t, berrors.NewCLIErrorAdapter(false, nil).FormatError(err), path)
}

func TestBuild(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "metrics", "booknav.prom")
	p := newProject(t, "metrics:\n  textfile: "+textfile+"\n")

	out, err := run(t, "-c", p.config, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "success: 3 pages")
	assert.FileExists(t, filepath.Join(p.dist, "navigation.json"))
	assert.FileExists(t, filepath.Join(p.dist, "pages", "c01.json"))

	var manifest struct {
		Pages []struct {
			Target string `json:"target"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal([]byte(mustRead(t, filepath.Join(p.dist, "manifest.json"))), &manifest))
	require.Len(t, manifest.Pages, 3)
	assert.Equal(t, "index", manifest.Pages[0].Target)

	assert.Contains(t, mustRead(t, textfile), "booknav_build_outcomes_total")
}

func TestBuild_OutputOverrideAndDryRun(t *testing.T) {
	p := newProject(t, "")
	other := filepath.Join(p.root, "elsewhere")

	out, err := run(t, "-c", p.config, "build", "--dry-run", "-o", other)
	require.NoError(t, err)
	assert.Contains(t, out, "(dry run)")
	assert.NoDirExists(t, other)

	_, err = run(t, "-c", p.config, "build", "-o", other, "--pretty")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(other, "manifest.json"))
	assert.NoDirExists(t, p.dist)
	assert.Contains(t, mustRead(t, filepath.Join(other, "manifest.json")), "\n  \"buildId\"")
}

func TestBuild_FailureWritesMetrics(t *testing.T) {
	textfile := filepath.Join(t.TempDir(), "booknav.prom")
	p := newProject(t, "metrics:\n  textfile: "+textfile+"\n")
	require.NoError(t, os.Remove(filepath.Join(p.docs, "c01.md")))

	_, err := run(t, "-c", p.config, "build")
	require.Error(t, err)
	assert.NoDirExists(t, p.dist)
	assert.Contains(t, mustRead(t, textfile), `kind="missing_page"`)
}

func TestRender_Text(t *testing.T) {
	p := newProject(t, "")
	out, err := run(t, "-c", p.config, "render", "--page", "/c01/")
	require.NoError(t, err)

	assert.Contains(t, out, "A Crash Course in C++ and the Standard Library (https://pcpp.xihale.top/c01/)")
	assert.Contains(t, out, "path: Chapters\n")
	assert.Contains(t, out, "+ Professional C++ 6th\n")
	assert.Contains(t, out, "- Chapters\n  > 01. Crash Course\n    02. Strings\n")
	assert.Contains(t, out, "prev: Book Overview (index)")
	assert.Contains(t, out, "next: 02. Strings (c02)")
	assert.Contains(t, out, "- The Basics of C++ #")
	assert.Contains(t, out, "  - Modules #")
}

func TestRender_JSON(t *testing.T) {
	p := newProject(t, "")
	out, err := run(t, "-c", p.config, "render", "--page", "c02", "--format", "json")
	require.NoError(t, err)

	var pm struct {
		Target  string `json:"target"`
		Sidebar struct {
			Current string `json:"current"`
		} `json:"sidebar"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &pm))
	assert.Equal(t, "c02", pm.Target)
	assert.Equal(t, "c02", pm.Sidebar.Current)
}

func TestRender_FlagValidation(t *testing.T) {
	p := newProject(t, "")
	_, err := run(t, "-c", p.config, "render")
	require.Error(t, err, "--page is required")

	_, err = run(t, "-c", p.config, "render", "--page", "c01", "--format", "html")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site", "booknav.toml")
	out, err := run(t, "-c", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Professional C++ 6th", cfg.Title)

	_, err = run(t, "-c", path, "init")
	require.Error(t, err)
	assert.Equal(t, 7, exitCode(err))

	_, err = run(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}

func TestWatch_BuildsUntilCancelled(t *testing.T) {
	p := newProject(t, "")
	root := &CLI{Config: p.config}
	cmd := &WatchCmd{Debounce: 20 * time.Millisecond}
	cfg, err := root.loadConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	w := cmd.watcher(&Global{Ctx: ctx, Out: &out}, root, cfg)
	assert.Equal(t, []string{p.docs}, w.Roots)
	assert.Contains(t, w.Files, p.config)
	assert.Contains(t, w.Files, filepath.Join(p.root, ".env"))

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	manifest := filepath.Join(p.dist, "manifest.json")
	require.Eventually(t, func() bool {
		_, err := os.Stat(manifest)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, filepath.Join(p.docs, "c02.md"), "---\ntitle: Strings and String Views\n---\n")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(p.dist, "pages", "c02.json"))
		return err == nil && strings.Contains(string(data), "String Views")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestLoggerFlags(t *testing.T) {
	ctx := context.Background()
	quiet := (&CLI{}).logger(config.LogLevelWarn, config.LogFormatText)
	assert.False(t, quiet.Enabled(ctx, slog.LevelInfo))

	verbose := (&CLI{Verbose: true}).logger(config.LogLevelError, config.LogFormatJSON)
	assert.True(t, verbose.Enabled(ctx, slog.LevelDebug))

	flagged := (&CLI{LogLevel: "WARNING"}).logger(config.LogLevelDebug, config.LogFormatText)
	assert.False(t, flagged.Enabled(ctx, slog.LevelInfo), "--log-level overrides logging.level")
	assert.True(t, flagged.Enabled(ctx, slog.LevelWarn))
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
