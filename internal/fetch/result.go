package fetch

import (
	"encoding/json"

	"github.com/tbckr/catalog/internal/apperr"
)

// UnknownErrorMessage is used when a failure carries no usable description.
const UnknownErrorMessage = "Unknown error occurred"

// Result holds either a success value or a failure, never both.
// The zero Result is a success holding the zero value of T.
type Result[T any] struct {
	data T
	err  error
}

// Success returns a successful Result holding data.
func Success[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Failure returns a failed Result. A nil err still yields a failure, carrying
// UnknownErrorMessage.
func Failure[T any](err error) Result[T] {
	if err == nil || err.Error() == "" {
		err = apperr.Wrap(apperr.ErrRequestFailed, UnknownErrorMessage, err)
	}
	return Result[T]{err: err}
}

// OK reports whether r is a success.
func (r Result[T]) OK() bool { return r.err == nil }

// Data returns the success value, or the zero value of T on failure.
func (r Result[T]) Data() T { return r.data }

// Err returns the failure, or nil on success.
func (r Result[T]) Err() error { return r.err }

// Message returns the failure message, or "" on success.
func (r Result[T]) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Unwrap returns the result as a conventional (value, error) pair.
func (r Result[T]) Unwrap() (T, error) { return r.data, r.err }

// MarshalJSON renders {"data": ..., "error": ...} with the unused side null.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

type wireResult struct {
	Data  any     `json:"data"`
	Error *string `json:"error"`
}

func (r Result[T]) wire() wireResult {
	if r.err != nil {
		msg := r.err.Error()
		return wireResult{Error: &msg}
	}
	return wireResult{Data: r.data}
}
