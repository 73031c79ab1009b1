package suite

import (
	"errors"
	"fmt"
)

var (
	// ErrAsyncTest is returned when an asynchronous test fails to produce a verdict.
	ErrAsyncTest = errors.New("suite: async test failed")

	// ErrNilSuite is returned by adapters constructed without a function.
	ErrNilSuite = errors.New("suite: nil suite function")

	// ErrPanic is wrapped by PanicError.
	ErrPanic = errors.New("suite: suite panicked")
)

// AsyncTestError ties an async test failure to the field it was registered for.
type AsyncTestError struct {
	Field string
	Err   error
}

func (e *AsyncTestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *AsyncTestError) Unwrap() []error {
	return []error{ErrAsyncTest, e.Err}
}

// PanicError reports a suite that panicked while being invoked.
type PanicError struct {
	Field string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("suite execution failed: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	return ErrPanic
}

// Rejections collects the messages of every *AsyncTestError in err, keyed by
// field.
func Rejections(err error) map[string][]string {
	out := make(map[string][]string)
	collectRejections(err, out)
	return out
}

func collectRejections(err error, out map[string][]string) {
	switch e := err.(type) {
	case nil:
		return
	case *AsyncTestError:
		out[e.Field] = append(out[e.Field], e.Err.Error())
		return
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			collectRejections(inner, out)
		}
	case interface{ Unwrap() error }:
		collectRejections(e.Unwrap(), out)
	}
}
