package service

import (
	"errors"
	"fmt"
)

// ErrNoMatches reports that no dataset rows satisfied a filter. It is a valid
// terminal outcome, surfaced to the user as a fallback link.
var ErrNoMatches = errors.New("no matching rows")

// ValidationError reports a bad field value. Always recoverable: the field is
// either re-prompted or coerced to null, per its rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// ExternalServiceError reports that the extraction endpoint was unreachable or
// timed out. The caller degrades to manual field collection.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service error: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// MalformedResponseError reports that the extraction endpoint returned text
// that is not valid JSON or omits required keys. The caller degrades to
// manual field collection.
type MalformedResponseError struct {
	Content string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed extraction response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UnknownFieldError reports an unrecognized field name in the edit loop.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}
