// Package config loads the booknav site configuration: site metadata, the
// declarative sidebar and the build settings around them.
package config

import (
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// Config is the root configuration document.
type Config struct {
	Title           string           `yaml:"title" toml:"title"`
	Description     string           `yaml:"description,omitempty" toml:"description,omitempty"`
	Site            string           `yaml:"site,omitempty" toml:"site,omitempty"`
	Social          SocialLinks      `yaml:"social,omitempty" toml:"social,omitempty"`
	EditLink        EditLinkConfig   `yaml:"editLink,omitempty" toml:"editLink"`
	TableOfContents TOCConfig        `yaml:"tableOfContents,omitempty" toml:"tableOfContents"`
	CustomCSS       []string         `yaml:"customCss,omitempty" toml:"customCss,omitempty"`
	Themes          []string         `yaml:"themes,omitempty" toml:"themes,omitempty"`
	Markdown        MarkdownConfig   `yaml:"markdown,omitempty" toml:"markdown"`
	Navigation      NavigationConfig `yaml:"navigation,omitempty" toml:"navigation"`
	Content         ContentConfig    `yaml:"content,omitempty" toml:"content"`
	Output          OutputConfig     `yaml:"output,omitempty" toml:"output"`
	Logging         LoggingConfig    `yaml:"logging,omitempty" toml:"logging"`
	Metrics         MetricsConfig    `yaml:"metrics,omitempty" toml:"metrics"`
	Sidebar         []nav.Entry      `yaml:"sidebar" toml:"sidebar"`

	// Root is the project directory, set by Load to the config file's
	// directory. Edit links are built from source paths relative to it.
	Root string `yaml:"-" toml:"-"`
}

// EditLinkConfig points pages at their source for editing.
type EditLinkConfig struct {
	BaseURL string `yaml:"baseUrl,omitempty" toml:"baseUrl,omitempty"`
}

// TOCConfig bounds the heading levels shown in a page's table of contents.
type TOCConfig struct {
	MinHeadingLevel int `yaml:"minHeadingLevel,omitempty" toml:"minHeadingLevel,omitempty"`
	MaxHeadingLevel int `yaml:"maxHeadingLevel,omitempty" toml:"maxHeadingLevel,omitempty"`
}

// MarkdownConfig selects the Markdown extensions used for outlines.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`
}

// NavigationConfig controls how the sidebar declaration is built.
type NavigationConfig struct {
	MaxDepth    int             `yaml:"maxDepth,omitempty" toml:"maxDepth,omitempty"`
	DepthPolicy nav.DepthPolicy `yaml:"depthPolicy,omitempty" toml:"depthPolicy,omitempty"`
}

// ContentConfig locates the page sources.
type ContentConfig struct {
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
	// SkipVerify disables the check that every sidebar link has a page.
	SkipVerify bool `yaml:"skipVerify,omitempty" toml:"skipVerify,omitempty"`
}

// OutputConfig controls where build artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty" toml:"directory,omitempty"`
	Pretty    bool   `yaml:"pretty,omitempty" toml:"pretty,omitempty"`
}

// MetricsConfig enables the Prometheus textfile written after each build.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" toml:"textfile,omitempty"`
}

// NavOptions converts the navigation settings for nav.Build.
func (c *Config) NavOptions(titles nav.TitleLookup) nav.Options {
	return nav.Options{
		MaxDepth:    c.Navigation.MaxDepth,
		DepthPolicy: c.Navigation.DepthPolicy,
		Titles:      titles,
	}
}
