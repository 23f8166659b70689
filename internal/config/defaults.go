package config

import "git.home.luguber.info/inful/booknav/internal/nav"

const (
	DefaultContentDir      = "src/content/docs"
	DefaultOutputDir       = "dist/booknav"
	DefaultMinHeadingLevel = 2
	DefaultMaxHeadingLevel = 3
)

// DefaultThemes are the dark and light code themes used when none are set.
var DefaultThemes = []string{"starlight-dark", "starlight-light"}

// DefaultMarkdownExtensions is used when markdown.extensions is omitted.
var DefaultMarkdownExtensions = []string{"gfm"}

// ApplyDefaults fills every unset field. It never overrides explicit values.
func (c *Config) ApplyDefaults() {
	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.TableOfContents.MinHeadingLevel == 0 {
		c.TableOfContents.MinHeadingLevel = DefaultMinHeadingLevel
	}
	if c.TableOfContents.MaxHeadingLevel == 0 {
		c.TableOfContents.MaxHeadingLevel = max(DefaultMaxHeadingLevel, c.TableOfContents.MinHeadingLevel)
	}
	if len(c.Themes) == 0 {
		c.Themes = append([]string(nil), DefaultThemes...)
	}
	if c.Markdown.Extensions == nil {
		c.Markdown.Extensions = append([]string(nil), DefaultMarkdownExtensions...)
	}
	if c.Navigation.MaxDepth == 0 {
		c.Navigation.MaxDepth = nav.DefaultMaxDepth
	}
	if c.Navigation.DepthPolicy == "" {
		c.Navigation.DepthPolicy = nav.DepthReject
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}
