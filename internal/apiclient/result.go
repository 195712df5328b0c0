package apiclient

import "fmt"

// Kind tags the outcome of a backend call.
type Kind int

const (
	KindOK Kind = iota
	KindHTTPError
	KindNetworkError
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindHTTPError:
		return "http_error"
	case KindNetworkError:
		return "network_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one backend call. Exactly one of Value (KindOK)
// or Err (the other kinds) is meaningful.
type Result[T any] struct {
	Kind   Kind
	Value  T
	Status int
	Err    error
}

// OK reports whether the call produced a decoded body.
func (r Result[T]) OK() bool { return r.Kind == KindOK }

// Unwrap returns the value or the classified error, for callers that only
// need Go's two-value form.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// HTTPError is a response with a non-2xx status, or a 2xx response whose
// body could not be decoded.
type HTTPError struct {
	Status int
	Body   string
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("apiclient: http %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("apiclient: http %d", e.Status)
}

// NotFound reports a 404 response.
func (e *HTTPError) NotFound() bool { return e.Status == 404 }

// NetworkError is a failure to obtain any response at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
