package helper

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a single-item lookup matched no row.
// List-style queries return empty slices instead.
var ErrNotFound = errors.New("not found")

// ErrValidation signals malformed input (empty entity name, empty required field).
var ErrValidation = errors.New("invalid input")

// Error wraps an underlying error with the action that failed.
type Error struct {
	Action string
	Err    error
}

// NewError creates a new Error for the given action.
func NewError(action string, err error) *Error {
	return &Error{
		Action: action,
		Err:    err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error in %s: %v", e.Action, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
