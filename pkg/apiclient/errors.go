package apiclient

import (
	"errors"
	"fmt"
)

// FallbackMessage is surfaced when neither the payload nor the status line
// gives a usable message.
const FallbackMessage = "Something went wrong. Please try again."

var (
	ErrInvalidBaseURL = errors.New("apiclient: base URL must be absolute")
	ErrEncodeBody     = errors.New("apiclient: failed to encode request body")
	ErrDecodeBody     = errors.New("apiclient: failed to decode response body")
)

// Kind classifies a failed call.
type Kind string

const (
	// KindRequestFailed is any non-2xx response other than 401.
	KindRequestFailed Kind = "request_failed"
	// KindAuthRejected is a 401 response. Unauthorized handlers have run.
	KindAuthRejected Kind = "auth_rejected"
	// KindTimeout means the call did not finish within the client timeout.
	KindTimeout Kind = "timeout"
	// KindNetwork is a transport failure: no response was received.
	KindNetwork Kind = "network"
)

// Error is the normalized failure returned by every Client call.
// Error() returns the human-readable Message.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	Status     int
	StatusText string
	Message    string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// String includes the request line, for logs.
func (e *Error) String() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Message)
}

// AsError returns the *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}

// IsUnauthorized reports whether err is a 401 rejection.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindAuthRejected
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if e, ok := AsError(err); ok {
		return e.Status
	}
	return 0
}

// MessageOf returns the message to show an operator for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := AsError(err); ok {
		return e.Message
	}
	return err.Error()
}
