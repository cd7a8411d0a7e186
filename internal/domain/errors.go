package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation on a user or record set that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports user input outside the allowed range. Message is
// meant to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ParseErrorMessage is the user-facing text for any non-numeric input.
const ParseErrorMessage = "Please enter valid numeric values!"

// ParseError reports non-numeric text where a number was expected.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return ParseErrorMessage
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Detail describes which field failed, for logs.
func (e *ParseError) Detail() string {
	return fmt.Sprintf("%s: %q is not a number", e.Field, e.Input)
}

// IsValidation reports whether err is a validation or parse failure, both of
// which leave state untouched and can be retried by the user.
func IsValidation(err error) bool {
	var ve *ValidationError
	var pe *ParseError
	return errors.As(err, &ve) || errors.As(err, &pe)
}
