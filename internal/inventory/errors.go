package inventory

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when no item exists for the given id.
var ErrItemNotFound = errors.New("item not found")

// ValidationError reports a missing or invalid field on an insert or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
