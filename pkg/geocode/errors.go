package geocode

import "errors"

// Failure kinds reported by Client.Search. Every failure is final for the
// call that produced it; the client never retries.
var (
	ErrInvalidRequest = errors.New("geocode: invalid request")
	ErrTransport      = errors.New("geocode: transport failure")
	ErrMissingData    = errors.New("geocode: missing response data")
	ErrDecode         = errors.New("geocode: decode failure")
)

// Error is a failure of a single search. It matches its Kind with errors.Is
// and exposes the underlying cause, if any, to errors.As.
type Error struct {
	Kind  error
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

// KindOf returns a stable name for the failure kind of err, or "" when err
// is nil or not a geocode failure.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrMissingData):
		return "missing_data"
	case errors.Is(err, ErrDecode):
		return "decode"
	}
	return ""
}
