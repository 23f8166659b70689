package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading is one table-of-contents entry.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Outline extracts the headings of a Markdown body whose level lies within
// [minLevel, maxLevel], in document order. IDs are the slugs goldmark would
// assign, so they match the rendered anchors.
func Outline(body []byte, minLevel, maxLevel int, extensions []string) ([]Heading, error) {
	if minLevel < 1 || maxLevel > 6 || minLevel > maxLevel {
		return nil, fmt.Errorf("heading levels must satisfy 1 <= min <= max <= 6, got %d..%d", minLevel, maxLevel)
	}
	exts, err := extenders(extensions)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := md.Parser().Parse(text.NewReader(body))

	headings := make([]Heading, 0)
	err = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		h, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if h.Level >= minLevel && h.Level <= maxLevel {
			headings = append(headings, Heading{
				Level: h.Level,
				Text:  plainText(h, body),
				ID:    headingID(h),
			})
		}
		return gmast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

func headingID(h *gmast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case []byte:
		return string(id)
	case string:
		return id
	}
	return ""
}

// plainText concatenates the text content below n, dropping markup.
func plainText(n gmast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *gmast.String:
			buf.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return string(bytes.TrimSpace(buf.Bytes()))
}
