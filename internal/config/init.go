package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

var chapterTitles = []string{
	"Crash Course", "Strings", "Coding Style", "Program Design", "Class Design",
	"Reusability", "Memory Management", "Class Proficiency", "Inheritance",
	"Advanced Inheritance", "Modules", "Templates", "I/O Streams", "Error Handling",
	"Operator Overloading", "Standard Library", "Iterators & Ranges", "Containers",
	"Functions & Lambdas", "Algorithms", "Localization & Regex", "Date & Time",
	"Random Numbers", "Vocabulary Types", "Customizing STL", "Advanced Templates",
	"Multithreading", "Software Engineering", "Efficient C++", "Testing", "Debugging",
	"Design Frameworks", "Design Patterns", "Cross-Platform",
}

// Example returns the configuration written by Init: the Professional C++
// book with its full sidebar.
func Example() *Config {
	chapters := make([]nav.Entry, 0, len(chapterTitles))
	for i, t := range chapterTitles {
		chapters = append(chapters, nav.Entry{
			Label: fmt.Sprintf("%02d. %s", i+1, t),
			Slug:  fmt.Sprintf("c%02d", i+1),
		})
	}

	return &Config{
		Title: "Professional C++ 6th",
		Site:  "https://pcpp.xihale.top",
		Social: SocialLinks{
			{Icon: "github", Label: "GitHub", Href: "https://github.com/xihale/professional-cpp"},
		},
		EditLink:        EditLinkConfig{BaseURL: "https://github.com/xihale/professional-cpp/edit/main/"},
		TableOfContents: TOCConfig{MinHeadingLevel: DefaultMinHeadingLevel, MaxHeadingLevel: 4},
		CustomCSS:       []string{"./src/assets/style.css"},
		Themes:          []string{"vitesse-dark", "vitesse-light"},
		Markdown:        MarkdownConfig{Extensions: []string{"gfm"}},
		Navigation:      NavigationConfig{MaxDepth: nav.DefaultMaxDepth, DepthPolicy: nav.DepthReject},
		Content:         ContentConfig{Dir: DefaultContentDir},
		Output:          OutputConfig{Directory: DefaultOutputDir},
		Logging:         LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Sidebar: []nav.Entry{
			{Label: "Professional C++ 6th", Items: []nav.Entry{
				{Label: "Book Overview", Slug: "index"},
			}},
			{Label: "Frontmatter", Items: []nav.Entry{
				{Label: "Copyright", Slug: "f02"},
				{Label: "Dedication", Slug: "f03"},
				{Label: "About Author", Slug: "f04"},
				{Label: "Acknowledgments", Slug: "f05"},
				{Label: "Introduction", Slug: "f06"},
			}},
			{Label: "Chapters", Items: chapters},
			{Label: "Appendices", Items: []nav.Entry{
				{Label: "A. C++ Interviews", Slug: "b01"},
				{Label: "B. Additional Resources", Slug: "b02"},
				{Label: "C. References", Slug: "b03"},
				{Label: "D. Glossary", Slug: "b04"},
			}},
		},
	}
}

// Init writes the example configuration to path, as TOML when the extension
// is .toml and YAML otherwise. An existing file is kept unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return berrors.New(berrors.CategoryConfig, berrors.SeverityFatal, "configuration file already exists, use --force to overwrite").
			WithContext("path", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return berrors.Wrap(err, berrors.CategoryFileSystem, berrors.SeverityFatal, "cannot stat config path").
			WithContext("path", path)
	}

	data, err := Marshal(Example(), formatFor(path))
	if err != nil {
		return berrors.InternalError("failed to encode example config", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return berrors.OutputFailed("create config directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return berrors.OutputFailed("write config", err)
	}
	return nil
}

// Marshal encodes cfg in the given format with a short header comment.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# booknav configuration\n\n")

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
