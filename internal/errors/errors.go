package errors

import (
	"errors"
	"strings"
)

var ErrSessionNotFound = errors.New("page session not found")
var ErrNotFound = errors.New("resource not found")
var ErrInvalidTransition = errors.New("transition is not allowed in the current state")
var ErrBadInput = errors.New("invalid input value")

// ValidationError carries the ids of the fields that blocked a submit.
type ValidationError struct {
	Form   string
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Form + ": invalid fields: " + strings.Join(e.Fields, ", ")
}
