// Package apperr defines the application error type used for sentinel
// errors across tomato.
package apperr

import "fmt"

// Error is a user-facing error message that optionally wraps a cause.
// Values derived through Fmt or Wrap still match their sentinel with
// errors.Is.
type Error struct {
	Message string
	Err     error
	parent  *Error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is e or one of the sentinels e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	for p := e; p != nil; p = p.parent {
		if p == t {
			return true
		}
	}

	return false
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		Err:     e.Err,
		parent:  e,
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		Message: e.Message,
		Err:     err,
		parent:  e,
	}
}
