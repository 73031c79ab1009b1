package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrActionFailed = errors.New("statemachine: transition action failed")
	ErrNilObserver  = errors.New("statemachine: transition observer cannot be nil")
)

// NoTransitionError reports that no transition is defined for the current
// state and event.
type NoTransitionError struct {
	State string
	Event string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

// RejectedError reports that every candidate transition was vetoed by a guard.
type RejectedError struct {
	State string
	Event string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

// IsNoTransition reports whether err is a *NoTransitionError.
func IsNoTransition(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

// IsRejected reports whether err is a *RejectedError.
func IsRejected(err error) bool {
	var e *RejectedError
	return errors.As(err, &e)
}
