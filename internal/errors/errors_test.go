package errors

import (
	"context"
	"fmt"
	"testing"
)

func TestTransportErrorStatus(t *testing.T) {
	err := NewTransportError("open debate stream", 503, "upstream unavailable")

	want := "transport error: open debate stream: status 503: upstream unavailable"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !err.Retryable() {
		t.Error("503 should be retryable")
	}

	var te *TransportError
	if !As(err, &te) {
		t.Error("As() should match *TransportError")
	}
}

func TestTransportErrorClientRejection(t *testing.T) {
	err := NewTransportError("open debate stream", 401, "missing token")
	if err.Retryable() {
		t.Error("401 should not be retryable")
	}
}

func TestWrapTransportError(t *testing.T) {
	cause := New("connection refused")
	err := WrapTransportError("open debate stream", cause)

	if !Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if !err.Retryable() {
		t.Error("network-level failures should be retryable")
	}
}

func TestStreamErrorWithThread(t *testing.T) {
	err := NewStreamError("panel reported failure", ErrServerDeclared).WithThread("th-42")

	want := "stream error [thread=th-42]: panel reported failure: server declared an error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrServerDeclared) {
		t.Error("stream error should match its sentinel cause")
	}
}

func TestIsCancellation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrCanceled, true},
		{"context canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped context error", fmt.Errorf("read frame: %w", context.Canceled), true},
		{"transport failure", NewTransportError("open", 500, "boom"), false},
		{"no outcome", ErrNoOutcome, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCancellation(tt.err); got != tt.want {
				t.Errorf("IsCancellation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(context.Canceled) {
		t.Error("cancellation must never be retryable")
	}
	if !IsRetryable(ErrStreamClosed) {
		t.Error("a dropped stream should be retryable")
	}
	if IsRetryable(NewStreamError("bad payload", ErrServerDeclared)) {
		t.Error("server-declared errors should not be retryable")
	}
}
