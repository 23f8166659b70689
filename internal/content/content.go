// Package content discovers the Markdown pages a sidebar links to and checks
// the two against each other.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/booknav/internal/frontmatter"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

var pageExtensions = map[string]bool{".md": true, ".mdx": true, ".mdoc": true}

// Page is one content source file.
type Page struct {
	Target      string `json:"target"`
	SourcePath  string `json:"sourcePath"` // slash separated, relative to the content dir
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Fingerprint string `json:"fingerprint"`
	Body        []byte `json:"-"`
}

// Index holds the discovered pages keyed by normalized target.
type Index struct {
	dir   string
	pages map[string]*Page
}

// Discover walks dir for Markdown pages. Hidden files and directories, and
// those starting with an underscore, are skipped.
func Discover(dir string) (*Index, error) {
	idx := &Index{dir: dir, pages: make(map[string]*Page)}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !pageExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		page, err := readPage(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if prev, dup := idx.pages[page.Target]; dup {
			return &DuplicatePageError{Target: page.Target, First: prev.SourcePath, Second: page.SourcePath}
		}
		idx.pages[page.Target] = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

func readPage(path, rel string) (*Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fm, body, had, err := frontmatter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}

	p := &Page{
		Target:     nav.NormalizeTarget(rel),
		SourcePath: rel,
		Body:       body,
	}
	if had {
		fields, err := frontmatter.ParseYAML(fm)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rel, err)
		}
		p.Title = frontmatter.String(fields, "title")
		p.Description = frontmatter.String(fields, "description")
	}
	p.Fingerprint = mdfp.CalculateFingerprintFromParts(strings.TrimRight(string(fm), "\r\n"), string(body))
	return p, nil
}

// Dir returns the directory the index was built from.
func (x *Index) Dir() string { return x.dir }

// Len returns the number of pages.
func (x *Index) Len() int { return len(x.pages) }

// Lookup finds a page by target. The target is normalized first.
func (x *Index) Lookup(target string) (*Page, bool) {
	p, ok := x.pages[nav.NormalizeTarget(target)]
	return p, ok
}

// Title implements nav.TitleLookup.
func (x *Index) Title(target string) (string, bool) {
	p, ok := x.Lookup(target)
	if !ok || p.Title == "" {
		return "", false
	}
	return p.Title, true
}

// Pages returns every page sorted by target.
func (x *Index) Pages() []*Page {
	out := make([]*Page, 0, len(x.pages))
	for _, p := range x.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// Verify reports every sidebar link without a page.
func (x *Index) Verify(tree *nav.Tree) error {
	var missing []MissingLink
	for _, l := range tree.Links() {
		if _, ok := x.pages[l.Target]; !ok {
			missing = append(missing, MissingLink{Label: l.Label, Target: l.Target})
		}
	}
	if len(missing) > 0 {
		return &MissingPageError{Dir: x.dir, Links: missing}
	}
	return nil
}

// Orphans lists pages the sidebar does not link to, sorted by target.
func (x *Index) Orphans(tree *nav.Tree) []string {
	var out []string
	for target := range x.pages {
		if _, linked := tree.Lookup(target); !linked {
			out = append(out, target)
		}
	}
	sort.Strings(out)
	return out
}

// ErrMissingPage matches MissingPageError.
var ErrMissingPage = errors.New("missing page")

// MissingLink is a sidebar link whose page was not found.
type MissingLink struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// MissingPageError lists sidebar links without a content page.
type MissingPageError struct {
	Dir   string
	Links []MissingLink
}

func (e *MissingPageError) Error() string {
	parts := make([]string, 0, len(e.Links))
	for _, l := range e.Links {
		parts = append(parts, fmt.Sprintf("%q (%s)", l.Target, l.Label))
	}
	return fmt.Sprintf("%d sidebar link(s) have no page in %s: %s", len(e.Links), e.Dir, strings.Join(parts, ", "))
}

func (e *MissingPageError) Is(target error) bool { return target == ErrMissingPage }

// DuplicatePageError reports two files that normalize to the same target,
// for example c01.md and c01.mdx.
type DuplicatePageError struct {
	Target        string
	First, Second string
}

func (e *DuplicatePageError) Error() string {
	return fmt.Sprintf("files %s and %s both provide page %q", e.First, e.Second, e.Target)
}
