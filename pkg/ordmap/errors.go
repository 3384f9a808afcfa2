package ordmap

import (
	"errors"
	"fmt"
)

// Error is a map or iterator failure carrying a stable error code.
//
// Two Errors match under errors.Is when their codes are equal, so callers
// compare against the sentinels below regardless of attached details.
type Error struct {
	Code    string // Error code (e.g., "OM-MAP-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsError checks if an error is an *Error with the given code.
// If code is empty, it only checks if the error is an *Error.
func IsError(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		if code == "" {
			return true
		}
		return e.Code == code
	}
	return false
}

// ErrorCode extracts the error code from an error if it's an *Error.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ============================================================================
// Map Errors
// ============================================================================

var (
	// ErrInvalidArgument indicates a missing or malformed key argument.
	ErrInvalidArgument = NewError("OM-ARG-1001", "invalid argument")

	// ErrNotFound indicates the key has no stored value.
	ErrNotFound = NewError("OM-MAP-4040", "key not found")
)

// ============================================================================
// Iterator Errors
// ============================================================================

var (
	// ErrIllegalState indicates Remove was called without a preceding Next,
	// or twice for the same element.
	ErrIllegalState = NewError("OM-ITER-4000", "illegal iterator state")

	// ErrNoSuchElement indicates Next was called on an exhausted iterator.
	ErrNoSuchElement = NewError("OM-ITER-4041", "no more elements")

	// ErrConcurrentModification indicates the map changed shape after the
	// iterator was created. The iterator stays unusable from then on.
	ErrConcurrentModification = NewError("OM-ITER-4090", "concurrent modification")
)
