// internal/core/errors_test.go
package core

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrNetwork, ErrNetwork) {
		t.Error("same error should match")
	}

	wrapped := WrapError(ErrNetwork, errors.New("connection refused"))
	if !errors.Is(wrapped, ErrNetwork) {
		t.Error("wrapped error should match its base by code")
	}
	if errors.Is(wrapped, ErrBadPayload) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrBadPayload, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrBadPayload.Code {
		t.Error("code not preserved")
	}
}

func TestReject(t *testing.T) {
	err := Reject(ErrBackendRejected, "pattern is not a valid regex")
	if err.Message != "pattern is not a valid regex" {
		t.Errorf("backend message not kept verbatim: %q", err.Message)
	}
	if !errors.Is(err, ErrBackendRejected) {
		t.Error("rejection should keep the base code")
	}

	fallback := Reject(ErrBackendRejected, "")
	if fallback.Message != ErrBackendRejected.Message {
		t.Errorf("expected generic fallback message, got %q", fallback.Message)
	}
}
