package content

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/booknav/internal/foundation/normalization"
)

// Extension names a goldmark extension that can be enabled from config.
type Extension string

const (
	ExtGFM            Extension = "gfm"
	ExtTable          Extension = "table"
	ExtStrikethrough  Extension = "strikethrough"
	ExtLinkify        Extension = "linkify"
	ExtTaskList       Extension = "tasklist"
	ExtFootnote       Extension = "footnote"
	ExtDefinitionList Extension = "definitionlist"
	ExtTypographer    Extension = "typographer"
	ExtCJK            Extension = "cjk"
)

var extensionNormalizer = normalization.NewNormalizer(map[string]Extension{
	"gfm":            ExtGFM,
	"table":          ExtTable,
	"tables":         ExtTable,
	"strikethrough":  ExtStrikethrough,
	"linkify":        ExtLinkify,
	"tasklist":       ExtTaskList,
	"footnote":       ExtFootnote,
	"footnotes":      ExtFootnote,
	"definitionlist": ExtDefinitionList,
	"typographer":    ExtTypographer,
	"cjk":            ExtCJK,
}, ExtGFM)

// ParseExtension resolves a configured extension name.
func ParseExtension(name string) (Extension, error) {
	return extensionNormalizer.NormalizeWithError(name)
}

// ExtensionNames lists accepted extension names.
func ExtensionNames() []string {
	return extensionNormalizer.ValidKeys()
}

func (e Extension) extender() goldmark.Extender {
	switch e {
	case ExtTable:
		return extension.Table
	case ExtStrikethrough:
		return extension.Strikethrough
	case ExtLinkify:
		return extension.Linkify
	case ExtTaskList:
		return extension.TaskList
	case ExtFootnote:
		return extension.Footnote
	case ExtDefinitionList:
		return extension.DefinitionList
	case ExtTypographer:
		return extension.Typographer
	case ExtCJK:
		return extension.CJK
	default:
		return extension.GFM
	}
}

// extenders resolves names to goldmark extenders. Unknown names are an error;
// duplicates are dropped.
func extenders(names []string) ([]goldmark.Extender, error) {
	seen := make(map[Extension]bool, len(names))
	out := make([]goldmark.Extender, 0, len(names))
	for _, n := range names {
		ext, err := ParseExtension(n)
		if err != nil {
			return nil, err
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext.extender())
	}
	return out, nil
}
