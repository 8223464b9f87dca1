package output

import (
	"errors"
	"fmt"
)

// Error is a structured error with code, message, and optional hint.
type Error struct {
	Code       string
	Message    string
	Hint       string
	HTTPStatus int
	Retryable  bool
	Details    map[string]any
	Cause      error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	return ExitCodeFor(e.Code)
}

// Error constructors for common cases.

func ErrUsage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

func ErrUsageHint(msg, hint string) *Error {
	return &Error{Code: CodeUsage, Message: msg, Hint: hint}
}

// ErrValidation reports a local pre-flight field check failure.
// These never come from the network layer.
func ErrValidation(field, msg string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: msg,
		Details: map[string]any{"field": field},
	}
}

func ErrNetwork(cause error) *Error {
	return &Error{
		Code:      CodeNetwork,
		Message:   "Network error",
		Hint:      cause.Error(),
		Retryable: true,
		Cause:     cause,
	}
}

func ErrTimeout(cause error) *Error {
	return &Error{
		Code:      CodeTimeout,
		Message:   "Request timed out",
		Retryable: true,
		Cause:     cause,
	}
}

// ErrParse reports a response body that could not be decoded.
// Terminal: a malformed body will not improve on retry.
func ErrParse(status int, cause error) *Error {
	return &Error{
		Code:       CodeParse,
		Message:    "Failed to parse response",
		HTTPStatus: status,
		Cause:      cause,
	}
}

// ErrUnauthorized reports a 401. Session-invalidating: callers must assume
// the whole session is gone, not just the one request.
func ErrUnauthorized(msg string) *Error {
	if msg == "" {
		msg = "Authentication failed"
	}
	return &Error{
		Code:       CodeUnauthorized,
		Message:    msg,
		Hint:       "Run: petcare auth login",
		HTTPStatus: 401,
	}
}

func ErrClient(status int, code, msg string) *Error {
	if code == "" {
		code = CodeClient
	}
	if msg == "" {
		msg = "Request failed"
	}
	return &Error{
		Code:       code,
		Message:    msg,
		HTTPStatus: status,
	}
}

func ErrServer(status int, msg string) *Error {
	if msg == "" {
		msg = fmt.Sprintf("Server error (%d)", status)
	}
	return &Error{
		Code:       CodeServer,
		Message:    msg,
		HTTPStatus: status,
		Retryable:  true,
	}
}

// AsError attempts to convert an error to an *Error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:    CodeClient,
		Message: err.Error(),
		Cause:   err,
	}
}
