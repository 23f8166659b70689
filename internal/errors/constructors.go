package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BooknavError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *BooknavError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration could not be loaded").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BooknavError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

func MetadataInvalid(cause error) *BooknavError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "site metadata is invalid")
}

// Site model errors

func NavigationInvalid(cause error) *BooknavError {
	return Wrap(cause, CategoryNavigation, SeverityFatal, "sidebar is invalid")
}

func ContentMissing(cause error) *BooknavError {
	return Wrap(cause, CategoryContent, SeverityFatal, "sidebar links to missing pages")
}

func ContentUnreadable(dir string, cause error) *BooknavError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content directory could not be read").
		WithContext("path", dir)
}

// Output errors

func OutputFailed(operation string, cause error) *BooknavError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "writing output failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *BooknavError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
