package nav

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// contentExtensions are stripped from targets so "c01.md" and "c01" collide.
var contentExtensions = []string{".mdoc", ".mdx", ".md"}

// NormalizeTarget converts a slug or content path to its canonical content
// identifier: forward slashes, no leading "./" or "/", no trailing slash, no
// markdown extension, no trailing "/index" segment, lower case.
func NormalizeTarget(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, `\`, "/")
	for strings.HasPrefix(s, "./") {
		s = s[2:]
	}
	s = strings.Trim(s, "/")
	// Lower-case first so extension and index checks see one spelling.
	// A Caser holds state; one per call keeps NormalizeTarget safe for concurrent use.
	s = cases.Lower(language.Und).String(s)
	for {
		trimmed := strings.TrimSuffix(s, "/index")
		for _, ext := range contentExtensions {
			if strings.HasSuffix(trimmed, ext) {
				trimmed = strings.TrimSuffix(trimmed, ext)
				break
			}
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// labelKey is the comparison key for sibling labels.
func labelKey(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}
