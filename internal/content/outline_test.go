package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapter = `# A Crash Course in C++

## The Basics of C++

### Modules

#### Preprocessor Directives

##### Too deep

## Working with ` + "`std::string`" + `

Footnote reference[^1].

[^1]: A note.
`

func TestOutline_LevelBounds(t *testing.T) {
	got, err := Outline([]byte(chapter), 2, 4, []string{"gfm", "footnote"})
	require.NoError(t, err)

	var texts []string
	for _, h := range got {
		texts = append(texts, h.Text)
	}
	assert.Equal(t, []string{
		"The Basics of C++",
		"Modules",
		"Preprocessor Directives",
		"Working with std::string",
	}, texts)
	assert.Equal(t, 2, got[0].Level)
	assert.Equal(t, 4, got[2].Level)
}

func TestOutline_IDs(t *testing.T) {
	got, err := Outline([]byte("## Modules\n\n## Modules\n"), 2, 3, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "modules", got[0].ID)
	assert.Equal(t, "modules-1", got[1].ID)
}

func TestOutline_EmptyBody(t *testing.T) {
	got, err := Outline(nil, 2, 3, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOutline_InvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		exts     []string
	}{
		{"min zero", 0, 3, nil},
		{"max beyond h6", 2, 7, nil},
		{"min above max", 4, 3, nil},
		{"unknown extension", 2, 3, []string{"mermaid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Outline([]byte("## x\n"), tt.min, tt.max, tt.exts)
			require.Error(t, err)
		})
	}
}

func TestParseExtension(t *testing.T) {
	ext, err := ParseExtension(" Footnotes ")
	require.NoError(t, err)
	assert.Equal(t, ExtFootnote, ext)

	_, err = ParseExtension("mermaid")
	require.Error(t, err)
	assert.Contains(t, ExtensionNames(), "gfm")
}
