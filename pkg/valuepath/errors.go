package valuepath

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath is returned when a path does not match the dot-notation grammar.
	ErrInvalidPath = errors.New("valuepath: invalid path")

	// ErrIndexOutOfRange is returned when a numeric segment exceeds MaxIndex.
	ErrIndexOutOfRange = errors.New("valuepath: index out of range")
)

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
