// Package site holds the validated, read-only site metadata derived from the
// configuration.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// ErrInvalidURL matches InvalidURLError.
var ErrInvalidURL = errors.New("invalid url")

// InvalidURLError reports a configured URL that is not an absolute http(s)
// URL with a host.
type InvalidURLError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid url %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: invalid url %q: must be an absolute http(s) URL", e.Field, e.Value)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// Metadata is everything about the site apart from the sidebar.
type Metadata struct {
	Title              string              `json:"title"`
	Description        string              `json:"description,omitempty"`
	CanonicalOrigin    *url.URL            `json:"-"`
	EditBaseURL        *url.URL            `json:"-"`
	MinHeadingLevel    int                 `json:"minHeadingLevel"`
	MaxHeadingLevel    int                 `json:"maxHeadingLevel"`
	Themes             []string            `json:"themes"`
	Social             []config.SocialLink `json:"social,omitempty"`
	CustomCSS          []string            `json:"customCss,omitempty"`
	MarkdownExtensions []string            `json:"markdownExtensions,omitempty"`
}

// New validates the metadata fields of cfg. cfg is expected to have been
// through config.Load or the equivalent normalize/default steps.
func New(cfg *config.Config) (*Metadata, error) {
	m := &Metadata{
		Title:              cfg.Title,
		Description:        cfg.Description,
		MinHeadingLevel:    cfg.TableOfContents.MinHeadingLevel,
		MaxHeadingLevel:    cfg.TableOfContents.MaxHeadingLevel,
		Themes:             dedupe(cfg.Themes),
		Social:             append([]config.SocialLink(nil), cfg.Social...),
		CustomCSS:          append([]string(nil), cfg.CustomCSS...),
		MarkdownExtensions: append([]string(nil), cfg.Markdown.Extensions...),
	}

	var err error
	if m.CanonicalOrigin, err = parseURL("site", cfg.Site); err != nil {
		return nil, err
	}
	if m.EditBaseURL, err = parseURL("editLink.baseUrl", cfg.EditLink.BaseURL); err != nil {
		return nil, err
	}
	for i, s := range cfg.Social {
		if _, err := parseURL(fmt.Sprintf("social[%d].href", i), s.Href); err != nil {
			return nil, err
		}
	}

	if m.MinHeadingLevel < 1 || m.MaxHeadingLevel > 6 || m.MinHeadingLevel > m.MaxHeadingLevel {
		return nil, fmt.Errorf("tableOfContents: heading levels must satisfy 1 <= min <= max <= 6, got %d..%d",
			m.MinHeadingLevel, m.MaxHeadingLevel)
	}
	return m, nil
}

// parseURL returns nil for an empty value.
func parseURL(field, raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &InvalidURLError{Field: field, Value: raw, Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &InvalidURLError{Field: field, Value: raw}
	}
	return u, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// EditURL joins the edit base with a page's source path. The join is plain
// concatenation, so the base decides whether a separator is needed. It
// returns "" when no edit base is configured.
func (m *Metadata) EditURL(sourcePath string) string {
	if m.EditBaseURL == nil {
		return ""
	}
	p := strings.ReplaceAll(sourcePath, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimLeft(p, "/")
	return m.EditBaseURL.String() + p
}

// PageURL is the canonical URL of the page at target, or the site-relative
// path when no origin is configured.
func (m *Metadata) PageURL(target string) string {
	t := nav.NormalizeTarget(target)
	path := "/"
	if t != "" && t != "index" {
		path = "/" + t + "/"
	}
	if m.CanonicalOrigin == nil {
		return path
	}
	return strings.TrimRight(m.CanonicalOrigin.String(), "/") + path
}

// DarkTheme is the first configured theme.
func (m *Metadata) DarkTheme() string {
	if len(m.Themes) == 0 {
		return ""
	}
	return m.Themes[0]
}

// LightTheme is the second configured theme, falling back to the first.
func (m *Metadata) LightTheme() string {
	if len(m.Themes) < 2 {
		return m.DarkTheme()
	}
	return m.Themes[1]
}

// MarshalJSON adds the URLs as strings and the resolved theme pair.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	type alias Metadata
	return json.Marshal(struct {
		*alias
		Site        string `json:"site,omitempty"`
		EditBaseURL string `json:"editBaseUrl,omitempty"`
		DarkTheme   string `json:"darkTheme,omitempty"`
		LightTheme  string `json:"lightTheme,omitempty"`
	}{
		alias:       (*alias)(m),
		Site:        urlString(m.CanonicalOrigin),
		EditBaseURL: urlString(m.EditBaseURL),
		DarkTheme:   m.DarkTheme(),
		LightTheme:  m.LightTheme(),
	})
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
