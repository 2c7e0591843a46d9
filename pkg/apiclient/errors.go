package apiclient

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a request failure so callers can react differently to
// connectivity trouble, server rejections and undecodable replies.
type ErrorKind string

const (
	// KindNetwork covers DNS, dial and connection failures.
	KindNetwork ErrorKind = "network"
	// KindTimeout covers deadline expiry on the request context.
	KindTimeout ErrorKind = "timeout"
	// KindCanceled covers caller-side cancellation.
	KindCanceled ErrorKind = "canceled"
	// KindHTTP covers replies with a non-2xx status.
	KindHTTP ErrorKind = "http"
	// KindDecode covers 2xx replies whose body violates the endpoint contract.
	KindDecode ErrorKind = "decode"
)

// TransportError is the single failure type client operations return. Status
// is set only for KindHTTP. Err keeps the cause reachable through Unwrap.
type TransportError struct {
	Endpoint string
	Kind     ErrorKind
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("endpoint %s: %s failure", e.Endpoint, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// KindOf reports the error kind carried anywhere in err's chain, or an empty
// kind when err carries none.
func KindOf(err error) ErrorKind {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}

// Retryable reports whether the failure is transient: connectivity loss,
// timeouts and 5xx statuses.
func Retryable(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) {
		return false
	}
	switch te.Kind {
	case KindNetwork, KindTimeout:
		return true
	case KindHTTP:
		return te.Status >= 500
	}
	return false
}

// classify maps a transport-level error to its kind.
func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindNetwork
	}
}
