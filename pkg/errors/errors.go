// Package errors provides structured error types for gitcite.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - One human-readable message per failed query
//
// # Error Codes
//
// A citation query can fail in two places:
//   - INVALID_REFERENCE: the input is not a recognized repository reference
//   - FETCH_FAILED: the host API call failed (network, HTTP status, payload)
//
// A repository without tags is not an error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidReference, "unrecognized repository URL format")
//	if errors.Is(err, errors.ErrCodeInvalidReference) {
//	    // Handle bad input
//	}
//
//	// Wrap existing errors and record which host was queried
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "failed to fetch GitHub repository information").
//	    WithSource("github.com")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"

	// Host API errors
	ErrCodeFetch    Code = "FETCH_FAILED"
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Source  string // Host or instance being queried (optional)
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

// WithSource records the host or instance the error came from and returns e.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
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
// It walks the whole chain, so a FETCH_FAILED error wrapping a NOT_FOUND
// error matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetSource returns the host or instance recorded on the outermost *Error.
func GetSource(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Source
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
