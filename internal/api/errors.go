package api

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure.
type Kind int

const (
	// KindPrecondition means a local invariant was violated before any
	// network I/O (for example, submitting with no active session).
	KindPrecondition Kind = iota
	// KindTransport covers network failures, timeouts, and non-success
	// HTTP statuses from the engine.
	KindTransport
	// KindDecode means the engine replied with a payload the client
	// could not parse.
	KindDecode
)

// String returns the kind's display name.
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the uniform failure shape for all four client operations.
// Message is human-readable: the engine's own error string when it sent
// one, otherwise a per-operation default.
type Error struct {
	Op      string // "start", "submit", "summary", "health"
	Kind    Kind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("api %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("api %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsPrecondition reports whether err is a client precondition failure.
func IsPrecondition(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindPrecondition
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}
