// Package errors provides a lightweight structured error type (BooknavError)
// for category-based classification in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a booknav error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Site model errors
	CategoryNavigation ErrorCategory = "navigation"
	CategoryContent    ErrorCategory = "content"

	// Output and runtime errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRuntime    ErrorCategory = "runtime"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// BooknavError is a structured error with category, severity and context
type BooknavError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BooknavError
type ContextFields map[string]any

// Error implements the error interface
func (e *BooknavError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap lets errors.Is/As reach the typed cause (nav, site, content errors).
func (e *BooknavError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BooknavError) WithContext(key string, value any) *BooknavError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new BooknavError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BooknavError {
	return &BooknavError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BooknavError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BooknavError {
	return &BooknavError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first BooknavError in err's chain.
func As(err error) (*BooknavError, bool) {
	var be *BooknavError
	if stderrors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsCategory checks if an error (or one it wraps) belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := As(err); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BooknavError
func GetCategory(err error) ErrorCategory {
	if be, ok := As(err); ok {
		return be.Category
	}
	return CategoryInternal
}
