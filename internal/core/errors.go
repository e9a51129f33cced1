// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Reject creates a new error with the same code but a backend-supplied
// message, kept verbatim for display.
func Reject(base *Error, message string) *Error {
	if message == "" {
		message = base.Message
	}
	return &Error{
		Code:    base.Code,
		Message: message,
	}
}

// Predefined errors
var (
	// Transport errors
	ErrNetwork = &Error{Code: "NETWORK_FAILED", Message: "backend request failed"}

	// Payload errors
	ErrBadPayload = &Error{Code: "BAD_PAYLOAD", Message: "unexpected response shape"}

	// Backend replied success:false
	ErrBackendRejected = &Error{Code: "BACKEND_REJECTED", Message: "request rejected by backend"}

	// Editor errors
	ErrFormInvalid = &Error{Code: "FORM_INVALID", Message: "pattern form is invalid"}
	ErrBusy        = &Error{Code: "BUSY", Message: "another request is in flight"}

	// Store errors
	ErrNoData = &Error{Code: "NO_DATA", Message: "no data available"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "invalid configuration"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "missing configuration"}
)
