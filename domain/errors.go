package domain

import (
	"errors"
	"fmt"
)

// Error codes for categorizing scan failures
const (
	ErrCodeInvalidPath       = "INVALID_PATH"
	ErrCodeInvalidRule       = "INVALID_RULE"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeAnalysisError     = "ANALYSIS_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError represents a categorized error with an underlying cause
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewInvalidPathError creates an error for a scan root that is missing or not a directory
func NewInvalidPathError(path string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidPath,
		Message: fmt.Sprintf("invalid path %q", path),
		Cause:   cause,
	}
}

// NewInvalidRuleError creates an error for a malformed include/exclude rule
func NewInvalidRuleError(pattern string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidRule,
		Message: fmt.Sprintf("invalid rule %q", pattern),
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}

// NewAnalysisError creates an analysis error
func NewAnalysisError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeAnalysisError, Message: message, Cause: cause}
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrCodeOutputError, Message: message, Cause: cause}
}

// NewUnsupportedFormatError creates an error for an unknown output format
func NewUnsupportedFormatError(format string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported output format %q", format),
	}
}

// IsCode reports whether err carries the given domain error code
func IsCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
