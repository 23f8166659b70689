package site

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booknav/internal/config"
)

func bookConfig() *config.Config {
	cfg := config.Example()
	cfg.ApplyDefaults()
	return cfg
}

func TestNew_Book(t *testing.T) {
	m, err := New(bookConfig())
	require.NoError(t, err)

	assert.Equal(t, "Professional C++ 6th", m.Title)
	assert.Equal(t, "https://pcpp.xihale.top", m.CanonicalOrigin.String())
	assert.Equal(t, 4, m.MaxHeadingLevel)
	assert.Equal(t, "vitesse-dark", m.DarkTheme())
	assert.Equal(t, "vitesse-light", m.LightTheme())
}

func TestNew_InvalidURLs(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*config.Config)
		field string
	}{
		{"relative site", func(c *config.Config) { c.Site = "pcpp.xihale.top" }, "site"},
		{"bad scheme", func(c *config.Config) { c.Site = "ftp://pcpp.xihale.top" }, "site"},
		{"unparseable edit base", func(c *config.Config) { c.EditLink.BaseURL = "https://exa mple.com/%zz" }, "editLink.baseUrl"},
		{"path-only edit base", func(c *config.Config) { c.EditLink.BaseURL = "/edit/main/" }, "editLink.baseUrl"},
		{"social href", func(c *config.Config) { c.Social[0].Href = "github" }, "social[0].href"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bookConfig()
			tt.edit(cfg)
			_, err := New(cfg)
			require.True(t, errors.Is(err, ErrInvalidURL), "got %v", err)
			var urlErr *InvalidURLError
			require.True(t, errors.As(err, &urlErr))
			assert.Equal(t, tt.field, urlErr.Field)
		})
	}
}

func TestNew_OptionalURLs(t *testing.T) {
	cfg := bookConfig()
	cfg.Site = ""
	cfg.EditLink.BaseURL = ""
	m, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, m.CanonicalOrigin)
	assert.Equal(t, "", m.EditURL("src/content/docs/c01.md"))
	assert.Equal(t, "/c01/", m.PageURL("c01"))
}

func TestNew_HeadingLevels(t *testing.T) {
	for _, levels := range [][2]int{{0, 3}, {2, 7}, {4, 3}} {
		cfg := bookConfig()
		cfg.TableOfContents = config.TOCConfig{MinHeadingLevel: levels[0], MaxHeadingLevel: levels[1]}
		_, err := New(cfg)
		assert.Error(t, err, "levels %v", levels)
	}
}

func TestNew_ThemesDeduplicated(t *testing.T) {
	cfg := bookConfig()
	cfg.Themes = []string{"vitesse-dark", "vitesse-light", "vitesse-dark"}
	m, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"vitesse-dark", "vitesse-light"}, m.Themes)

	cfg.Themes = []string{"only"}
	m, err = New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "only", m.LightTheme())
}

func TestEditURL(t *testing.T) {
	m, err := New(bookConfig())
	require.NoError(t, err)

	base := "https://github.com/xihale/professional-cpp/edit/main/"
	assert.Equal(t, base+"src/content/docs/c01.md", m.EditURL("src/content/docs/c01.md"))
	assert.Equal(t, base+"src/content/docs/c01.md", m.EditURL("./src/content/docs/c01.md"))
	assert.Equal(t, base+"src/content/docs/c01.md", m.EditURL("/src/content/docs/c01.md"))
}

func TestPageURL(t *testing.T) {
	m, err := New(bookConfig())
	require.NoError(t, err)

	assert.Equal(t, "https://pcpp.xihale.top/", m.PageURL("index"))
	assert.Equal(t, "https://pcpp.xihale.top/c01/", m.PageURL("C01.md"))
	assert.Equal(t, "https://pcpp.xihale.top/guides/setup/", m.PageURL("guides/setup"))
}

func TestMetadata_MarshalJSON(t *testing.T) {
	m, err := New(bookConfig())
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "https://pcpp.xihale.top", got["site"])
	assert.Equal(t, "https://github.com/xihale/professional-cpp/edit/main/", got["editBaseUrl"])
	assert.Equal(t, "Professional C++ 6th", got["title"])
	assert.Equal(t, "vitesse-dark", got["darkTheme"])
	assert.Equal(t, "vitesse-light", got["lightTheme"])
}
