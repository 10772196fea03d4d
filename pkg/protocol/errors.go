package protocol

import (
	"errors"
	"fmt"
)

// ErrInvalidAction marks an action kind outside read, write and click
var ErrInvalidAction = errors.New("INVALID_ACTION")

// ValidationError wraps a local contract violation when building a command
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s (value: %v): %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
