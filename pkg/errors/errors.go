// Package errors provides structured error types for the bbsbbu ordering engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the solver core and the CLI driver
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow these error kinds:
//   - INVALID_*: malformed input, fails fast
//   - CHECKPOINT_*: checkpoint resume failures (non-fatal, fall back to a fresh solve)
//   - INTERNAL_*: invariant violations, fatal
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "non-integer token in %s line %d", path, lineNo)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCheckpointMissing, origErr, "resume from %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for each kind.
const (
	// ErrCodeInvalidInput marks an unreadable file or a non-integer token in
	// one of the first two columns of an .nmr row.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeCheckpointMissing marks a checkpoint file that does not exist.
	// Callers fall back to a fresh solve.
	ErrCodeCheckpointMissing Code = "CHECKPOINT_MISSING"

	// ErrCodeCheckpointInvalid marks a checkpoint file that exists but could
	// not be read, parsed or validated (wrong version, truncated record,
	// non-integer cost bound, ...).
	ErrCodeCheckpointInvalid Code = "CHECKPOINT_INVALID"

	// ErrCodeInvariant marks a violated internal invariant (e.g. a segment
	// with an empty incident-edge set). Fatal: abort with a diagnostic.
	ErrCodeInvariant Code = "INTERNAL_INVARIANT"

	// ErrCodeInternal marks an unexpected internal error not covered by a
	// more specific code.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
