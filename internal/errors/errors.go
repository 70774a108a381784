// Package errors provides structured error handling with machine-readable codes.
package errors

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Directive errors
	CodeInsufficientIntel Code = "INSUFFICIENT_INTEL"
	CodeInvalidTarget     Code = "INVALID_TARGET"
	CodeInvalidDirective  Code = "INVALID_DIRECTIVE"

	// Session errors
	CodeSessionFrozen  Code = "SESSION_FROZEN"
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Tuning errors
	CodeTuningInvalid Code = "TUNING_INVALID"
)

// Error is a domain error carrying a stable code alongside its message.
type Error struct {
	Code    Code
	Message string
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Is matches errors that carry the same code.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// CodeOf extracts the code from an error, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}
