package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/foundation/normalization"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// NormalizationResult lists the adjustments Normalize made.
type NormalizationResult struct {
	Warnings []string
}

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Normalize canonicalizes user input in place: whitespace is trimmed, enum
// values are case-folded and empty list entries dropped. Values that cannot
// be recognized are left for Validate to report.
func (c *Config) Normalize() *NormalizationResult {
	res := &NormalizationResult{}

	c.Title = strings.TrimSpace(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Site = strings.TrimSpace(c.Site)
	c.EditLink.BaseURL = strings.TrimSpace(c.EditLink.BaseURL)

	c.Themes = trimList(c.Themes, "themes", res)
	c.CustomCSS = trimList(c.CustomCSS, "customCss", res)
	c.Markdown.Extensions = trimList(c.Markdown.Extensions, "markdown.extensions", res)
	for i, ext := range c.Markdown.Extensions {
		c.Markdown.Extensions[i] = normalization.Clean(ext)
	}

	for i := range c.Social {
		s := &c.Social[i]
		s.Icon = normalization.Clean(s.Icon)
		s.Label = strings.TrimSpace(s.Label)
		s.Href = strings.TrimSpace(s.Href)
		if s.Label == "" {
			s.Label = s.Icon
		}
	}

	if raw := string(c.Navigation.DepthPolicy); raw != "" {
		if p, err := nav.ParseDepthPolicy(raw); err == nil {
			if string(p) != raw {
				res.warn("navigation.depthPolicy %q normalized to %q", raw, p)
			}
			c.Navigation.DepthPolicy = p
		}
	}

	if raw := string(c.Logging.Level); raw != "" {
		if lvl, ok := logLevelNormalizer.Lookup(raw); ok {
			if string(lvl) != raw {
				res.warn("logging.level %q normalized to %q", raw, lvl)
			}
			c.Logging.Level = lvl
		}
	}
	if raw := string(c.Logging.Format); raw != "" {
		if f, ok := logFormatNormalizer.Lookup(raw); ok {
			if string(f) != raw {
				res.warn("logging.format %q normalized to %q", raw, f)
			}
			c.Logging.Format = f
		}
	}
	return res
}

func trimList(in []string, field string, res *NormalizationResult) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for i, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			res.warn("%s[%d] is empty and was dropped", field, i)
			continue
		}
		out = append(out, v)
	}
	return out
}
