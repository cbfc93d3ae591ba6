package htable

import (
	"errors"
	"fmt"
)

// Error is a table error carrying a stable code.
//
// Two errors are considered equal by errors.Is when their codes match, so
// callers can compare against the sentinel values below even when the
// returned error carries details.
type Error struct {
	Code    string // Error code (e.g., "HT-KEY-4040")
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

// ErrorCode extracts the error code from err if it's an *Error, or returns
// the empty string.
func ErrorCode(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

var (
	// ErrKeyNotFound is returned by At when no entry exists for the key.
	ErrKeyNotFound = NewError("HT-KEY-4040", "key not found")

	// ErrEmptyBucket is a precondition violation: the last value of a bucket
	// was requested while the bucket holds no entries. The public API never
	// produces it; seeing it means an internal invariant broke.
	ErrEmptyBucket = NewError("HT-BKT-5000", "bucket is empty")

	// ErrInvalidBucketCount is returned when a table is built with a
	// non-positive bucket count.
	ErrInvalidBucketCount = NewError("HT-CFG-4000", "bucket count must be positive")

	// ErrUnknownHasher is returned when a hasher name cannot be resolved.
	ErrUnknownHasher = NewError("HT-CFG-4001", "unknown hasher")
)
