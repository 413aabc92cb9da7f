package stt

import "errors"

// ErrTimeout is returned by AwaitResult when no transcript appeared before
// the caller's deadline. The audio record is left for its expiry to reclaim.
var ErrTimeout = errors.New("recognition timed out")

// ErrorKind tags the failure classes a transcription can surface.
type ErrorKind string

const (
	// KindValidation — empty or malformed audio payload, rejected before any
	// store interaction.
	KindValidation ErrorKind = "validation"
	// KindServiceUnavailable — the worker pool is not marked ready; nothing
	// was submitted.
	KindServiceUnavailable ErrorKind = "service_unavailable"
	// KindTransport — the store was unreachable or misbehaved during
	// submission or polling.
	KindTransport ErrorKind = "transport"
	// KindTimeout — no transcript appeared before the deadline.
	KindTimeout ErrorKind = "timeout"
)

// Error is the tagged failure Transcribe returns. Message is already
// sanitized and suitable for direct display; Err carries the wrapped cause
// for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a tagged Error, sanitizing the display message.
func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Message: Escape(message),
		Err:     err,
	}
}

// KindOf extracts the ErrorKind from err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
