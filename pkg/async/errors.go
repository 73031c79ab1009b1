package async

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout = errors.New("async: operation timed out waiting for future completion")
	ErrPanic   = errors.New("async: function panicked")
)

// PanicError carries the value recovered from a panicking async function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", ErrPanic, e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrPanic
}
