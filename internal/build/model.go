package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/content"
	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/logfields"
	"git.home.luguber.info/inful/booknav/internal/nav"
	"git.home.luguber.info/inful/booknav/internal/observability"
	"git.home.luguber.info/inful/booknav/internal/site"
)

// Site is the validated model of one configuration: metadata, navigation
// tree and, when the content directory exists, the page index.
type Site struct {
	Meta     *site.Metadata
	Tree     *nav.Tree
	Pages    *content.Index
	Warnings []nav.Warning
	Orphans  []string

	// sourceDir is the content directory relative to the project root in
	// slash form, or "" when it lies outside the root.
	sourceDir string
}

// PageModel is everything the site renderer needs for one page.
type PageModel struct {
	Target      string            `json:"target"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	URL         string            `json:"url"`
	EditURL     string            `json:"editUrl,omitempty"`
	SourcePath  string            `json:"sourcePath,omitempty"`
	Fingerprint string            `json:"fingerprint,omitempty"`
	Sidebar     nav.RenderModel   `json:"sidebar"`
	Outline     []content.Heading `json:"outline"`
}

// Prepare validates cfg and builds the site model without writing anything.
// Errors are BooknavErrors whose cause is the typed site, nav or content
// error.
func Prepare(ctx context.Context, cfg *config.Config) (*Site, error) {
	if cfg == nil {
		return nil, berrors.New(berrors.CategoryConfig, berrors.SeverityFatal, "config required")
	}

	meta, err := site.New(cfg)
	if err != nil {
		return nil, berrors.MetadataInvalid(err)
	}
	s := &Site{Meta: meta, sourceDir: sourceDir(cfg.Root, cfg.Content.Dir)}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx, err := discover(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.Pages = idx

	opts := cfg.NavOptions(nil)
	if idx != nil {
		opts.Titles = idx
	}
	tree, warnings, err := nav.Build(cfg.Sidebar, opts)
	if err != nil {
		return nil, berrors.NavigationInvalid(err)
	}
	s.Tree = tree
	s.Warnings = warnings
	for _, w := range warnings {
		observability.WarnContext(ctx, w.Message,
			logfields.NavPath(w.At.Labels), logfields.ConfigPath(w.At.ConfigPath))
	}

	if idx != nil {
		if !cfg.Content.SkipVerify {
			if err := idx.Verify(tree); err != nil {
				return nil, berrors.ContentMissing(err)
			}
		}
		s.Orphans = idx.Orphans(tree)
		for _, o := range s.Orphans {
			observability.WarnContext(ctx, "page is not linked from the sidebar", logfields.Target(o))
		}
	}
	return s, nil
}

// sourceDir resolves dir against root (the working directory when root is
// empty) and returns it relative to root. A directory outside root yields ""
// so no filesystem path leaks into edit links.
func sourceDir(root, dir string) string {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil || !filepath.IsLocal(rel) {
		slog.Debug("content directory is outside the project root", logfields.Path(absDir), slog.String("root", absRoot))
		return ""
	}
	return filepath.ToSlash(rel)
}

// discover returns nil without error when the content directory is absent
// and verification is disabled.
func discover(ctx context.Context, cfg *config.Config) (*content.Index, error) {
	dir := cfg.Content.Dir
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) && cfg.Content.SkipVerify {
			observability.DebugContext(ctx, "content directory absent, skipping discovery", logfields.Path(dir))
			return nil, nil
		}
		return nil, berrors.ContentUnreadable(dir, err)
	}
	idx, err := content.Discover(dir)
	if err != nil {
		return nil, berrors.ContentUnreadable(dir, err)
	}
	observability.DebugContext(ctx, "discovered content", logfields.Path(dir), logfields.Count(idx.Len()))
	return idx, nil
}

// Page derives the model for target. A target with no sidebar link still
// yields a model; its sidebar has nothing active.
func (s *Site) Page(target string) (PageModel, error) {
	t := nav.NormalizeTarget(target)
	pm := PageModel{
		Target:  t,
		URL:     s.Meta.PageURL(t),
		Sidebar: nav.Render(s.Tree, t),
		Outline: []content.Heading{},
	}
	if l, ok := s.Tree.Lookup(t); ok {
		pm.Title = l.Label
	}

	if s.Pages == nil {
		return pm, nil
	}
	p, ok := s.Pages.Lookup(t)
	if !ok {
		return pm, nil
	}
	if p.Title != "" {
		pm.Title = p.Title
	}
	pm.Description = p.Description
	pm.Fingerprint = p.Fingerprint
	pm.SourcePath = path.Join(s.sourceDir, p.SourcePath)
	pm.EditURL = s.Meta.EditURL(pm.SourcePath)

	outline, err := content.Outline(p.Body, s.Meta.MinHeadingLevel, s.Meta.MaxHeadingLevel, s.Meta.MarkdownExtensions)
	if err != nil {
		return PageModel{}, berrors.Wrap(err, berrors.CategoryContent, berrors.SeverityFatal, "outline failed").
			WithContext("target", t)
	}
	pm.Outline = outline
	return pm, nil
}
