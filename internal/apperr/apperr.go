package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a status code
// without knowing which domain raised it.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindAuthorization
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause while keeping the kind.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
func IsConflict(err error) bool      { return KindOf(err) == KindConflict }
func IsAuthorization(err error) bool { return KindOf(err) == KindAuthorization }
