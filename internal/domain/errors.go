package domain

import "errors"

// Error kinds. Services wrap these with user-facing messages; the HTTP layer
// maps each kind to a status code (404, 401, 400). Anything that is none of
// these kinds is an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authorized")
	ErrValidation   = errors.New("invalid input")
)

// Error carries a kind plus the message shown to the client.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Msg: msg} }
func Invalid(msg string) error      { return &Error{Kind: ErrValidation, Msg: msg} }
