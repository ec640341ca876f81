package texpack

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// ErrCodeOversizedInput is reported when a request can never fit within the maximum page
	// size, or when a page at the maximum size cannot hold a single request.
	ErrCodeOversizedInput Code = "OVERSIZED_INPUT"
	// ErrCodeInvalidSettings is reported by Settings.Validate.
	ErrCodeInvalidSettings Code = "INVALID_SETTINGS"
	// ErrCodeInvalidNinePatch is reported for malformed nine-patch borders.
	ErrCodeInvalidNinePatch Code = "INVALID_NINE_PATCH"
	// ErrCodeInvalidRequest is reported for requests without a positive size.
	ErrCodeInvalidRequest Code = "INVALID_REQUEST"
)

// Error is a structured error with a code, the name of the offending request (when there is
// one) and an optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Name    string // Name of the request, empty when not specific to one
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %s", e.Name, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and formatted message.
func NewError(code Code, name string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new Error wrapping an existing error.
func WrapError(code Code, name string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// vim: ts=4
