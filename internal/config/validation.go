package config

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/content"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// ErrInvalid matches any ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// FieldError is one problem found by Validate.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError so users can fix them in one go.
type ValidationError struct {
	Items []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, item := range e.Items {
		b.WriteString("\n - ")
		b.WriteString(item.Error())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

func (e *ValidationError) add(field, format string, args ...any) {
	e.Items = append(e.Items, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the structure of a normalized, defaulted config. URLs and
// heading bounds are checked by site.New, the sidebar by nav.Build.
func (c *Config) Validate() error {
	var ve ValidationError

	if c.Title == "" {
		ve.add("title", "is required")
	}
	if len(c.Sidebar) == 0 {
		ve.add("sidebar", "must declare at least one group")
	}
	if c.Content.Dir == "" {
		ve.add("content.dir", "is required")
	}
	if c.Output.Directory == "" {
		ve.add("output.directory", "is required")
	}

	if c.Navigation.MaxDepth < 1 {
		ve.add("navigation.maxDepth", "must be at least 1, got %d", c.Navigation.MaxDepth)
	}
	if _, err := nav.ParseDepthPolicy(string(c.Navigation.DepthPolicy)); err != nil {
		ve.add("navigation.depthPolicy", "unknown policy %q, expected one of: %s",
			c.Navigation.DepthPolicy, strings.Join(nav.DepthPolicyValues(), ", "))
	}

	for i, ext := range c.Markdown.Extensions {
		if _, err := content.ParseExtension(ext); err != nil {
			ve.add(fmt.Sprintf("markdown.extensions[%d]", i), "%v", err)
		}
	}

	for i, s := range c.Social {
		field := fmt.Sprintf("social[%d]", i)
		if s.Icon == "" {
			ve.add(field+".icon", "is required")
		}
		if s.Href == "" {
			ve.add(field+".href", "is required")
		}
	}

	if _, ok := logLevelNormalizer.Lookup(string(c.Logging.Level)); !ok {
		ve.add("logging.level", "unknown level %q", c.Logging.Level)
	}
	if _, ok := logFormatNormalizer.Lookup(string(c.Logging.Format)); !ok {
		ve.add("logging.format", "unknown format %q", c.Logging.Format)
	}

	if len(ve.Items) > 0 {
		return &ve
	}
	return nil
}
