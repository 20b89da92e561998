// Package errors provides centralized error definitions and error handling
// utilities for the moot codebase. It defines domain-specific errors for the
// transport and streaming layers, sentinel errors for terminal stream
// outcomes, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures from specific subsystems:
//   - TransportError: the HTTP request failed or the server rejected it
//     before streaming began
//   - StreamError: a failure inside an established event stream, including
//     well-formed error events declared by the server
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewTransportError("open debate stream", resp.StatusCode, body)
//	err := errors.NewStreamError("panel reported failure", errors.ErrServerDeclared)
//
// Checking errors:
//
//	if errors.IsCancellation(err) { ... }   // user cancelled, not a failure
//	if errors.Is(err, errors.ErrNoOutcome) { ... }
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Stream outcome sentinel errors.
var (
	// ErrCanceled indicates the caller cancelled the stream. It is distinct
	// from transport failures: callers must not present it as an error
	// condition.
	ErrCanceled = New("stream canceled")

	// ErrNoOutcome indicates the server ended the stream with a done event
	// but never delivered a result, pause, or error. The session folded so
	// far is still available, but its completeness cannot be inferred.
	ErrNoOutcome = New("stream ended without an outcome")

	// ErrStreamClosed indicates the byte stream ended without even a done
	// event, for example because the connection dropped mid-debate.
	ErrStreamClosed = New("stream closed unexpectedly")

	// ErrServerDeclared indicates the server sent a well-formed error event.
	ErrServerDeclared = New("server declared an error")

	// ErrSessionTerminal indicates an operation was attempted on a session
	// that already reached a terminal phase.
	ErrSessionTerminal = New("session already terminal")
)

// TransportError represents a failure to establish or sustain the HTTP
// request that carries the event stream. A non-2xx status is recorded with
// the response body text as detail, per the fail-fast contract.
type TransportError struct {
	Op         string // operation being performed, e.g. "open debate stream"
	StatusCode int    // HTTP status, 0 when the request never got a response
	Detail     string // response body text or underlying failure description
	cause      error
}

// NewTransportError creates a TransportError for a rejected request.
func NewTransportError(op string, statusCode int, detail string) *TransportError {
	return &TransportError{Op: op, StatusCode: statusCode, Detail: detail}
}

// WrapTransportError creates a TransportError around a network-level failure.
func WrapTransportError(op string, cause error) *TransportError {
	return &TransportError{Op: op, cause: cause}
}

// Error returns the formatted error message.
func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error: %s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	case e.cause != nil:
		return fmt.Sprintf("transport error: %s: %v", e.Op, e.cause)
	default:
		return fmt.Sprintf("transport error: %s", e.Op)
	}
}

// Unwrap returns the underlying error, if any.
func (e *TransportError) Unwrap() error { return e.cause }

// Is reports whether this error matches the target.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Retryable reports whether the failure is plausibly transient. Requests
// that never reached the server and 5xx rejections qualify; 4xx do not.
func (e *TransportError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// StreamError represents a failure that occurred inside an established
// event stream, after the HTTP response was accepted.
type StreamError struct {
	Message  string // server-provided or internal description
	ThreadID string // debate thread, when known
	cause    error
}

// NewStreamError creates a new StreamError.
func NewStreamError(message string, cause error) *StreamError {
	return &StreamError{Message: message, cause: cause}
}

// WithThread adds the debate thread ID to the error context.
func (e *StreamError) WithThread(id string) *StreamError {
	e.ThreadID = id
	return e
}

// Error returns the formatted error message.
func (e *StreamError) Error() string {
	prefix := "stream error"
	if e.ThreadID != "" {
		prefix = fmt.Sprintf("stream error [thread=%s]", e.ThreadID)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *StreamError) Unwrap() error { return e.cause }

// Is reports whether this error matches the target.
func (e *StreamError) Is(target error) bool {
	if _, ok := target.(*StreamError); ok {
		return true
	}
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsCancellation reports whether err represents a caller-initiated
// cancellation rather than a genuine failure. Both the package sentinel and
// the context errors it typically wraps are recognized, so callers can
// check the outcome of an open call without caring which layer noticed the
// cancellation first.
func IsCancellation(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, ErrCanceled) ||
		Is(err, context.Canceled) ||
		Is(err, context.DeadlineExceeded)
}

// IsRetryable reports whether err represents a transient condition that may
// succeed on retry. Cancellations are never retryable.
func IsRetryable(err error) bool {
	if err == nil || IsCancellation(err) {
		return false
	}
	var te *TransportError
	if As(err, &te) {
		return te.Retryable()
	}
	return Is(err, ErrStreamClosed)
}
