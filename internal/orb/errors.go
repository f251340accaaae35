package orb

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a dataset fetch failure.
type ErrorKind string

// Fetch failure kinds. Timeout is distinct from Transport so callers can
// tell a slow sensor from an unreachable one.
const (
	ErrorTransport ErrorKind = "transport"
	ErrorTimeout   ErrorKind = "timeout"
	ErrorStatus    ErrorKind = "status"
	ErrorResponse  ErrorKind = "response"
)

// FetchError describes a failed dataset fetch.
type FetchError struct {
	Dataset Dataset
	Kind    ErrorKind
	Status  int    // HTTP status code when Kind is ErrorStatus
	Message string // human-readable detail
	Err     error  // underlying cause, when available
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if e.Kind == ErrorStatus {
		return fmt.Sprintf("fetch %s: unexpected status %d: %s", e.Dataset, e.Status, detail)
	}
	return fmt.Sprintf("fetch %s: %s: %s", e.Dataset, e.Kind, detail)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the fetch failure kind, or an empty kind when err did not
// come from a dataset fetch.
func KindOf(err error) ErrorKind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return ""
}

// IsTimeout reports whether err is a dataset fetch timeout.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrorTimeout
}
