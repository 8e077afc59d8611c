package apperr

import "errors"

// ErrInvalidInput is returned when a flag, config value, or argument fails validation.
var ErrInvalidInput = errors.New("invalid input")

// ErrRequestFailed marks a request that failed at the transport level:
// connection errors, timeouts, cancelled contexts, unreadable bodies.
var ErrRequestFailed = errors.New("request failed")

// ErrHTTPStatus marks a response that arrived with a non-2xx status code.
var ErrHTTPStatus = errors.New("unsuccessful HTTP status")

// ErrInvalidResponse marks a 2xx response whose body is not valid JSON or
// does not have the shape the caller expects.
var ErrInvalidResponse = errors.New("invalid response")

// ErrUnknownEndpoint is returned when a logical endpoint name cannot be resolved
// to an address.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Error is a classified failure. Error() returns Msg verbatim so the text can be
// shown to users unchanged; errors.Is matches both Kind and Cause.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

// New returns an *Error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an *Error of the given kind that keeps cause in its chain.
func Wrap(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes Kind and Cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
