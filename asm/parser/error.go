package parser

import (
	"fmt"
)

// Error defines a parse error with source context.
type Error struct {
	Pos Position
	Msg string
	Err error // Optional underlying error.
}

// NewError creates a new, formatted error message with the given source context.
func NewError(pos Position, f string, argv ...interface{}) *Error {
	return &Error{
		Pos: pos,
		Msg: fmt.Sprintf(f, argv...),
	}
}

// WrapError attaches source context to the given error.
func WrapError(pos Position, err error) *Error {
	return &Error{
		Pos: pos,
		Msg: err.Error(),
		Err: err,
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + " " + e.Msg
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
