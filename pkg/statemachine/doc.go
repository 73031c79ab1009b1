// Package statemachine provides a small, type-safe finite state machine.
//
// States and events are any comparable types, usually string-based
// constants. The machine handles transition lookup, guard evaluation and
// action execution under a mutex, and notifies observers after each
// successful transition.
//
// # Usage
//
//	type phase string
//	type signal string
//
//	const (
//	    Idle      phase  = "idle"
//	    Scheduled phase  = "scheduled"
//	    Schedule  signal = "schedule"
//	)
//
//	m := statemachine.MustNew(Idle,
//	    statemachine.WithTransition(Idle, Scheduled, Schedule),
//	)
//	_ = m.Fire(ctx, Schedule)
//
// # Guards and Actions
//
// Guards veto a transition; the first candidate whose guards all pass is
// taken. Actions run in order before the state changes and abort the
// transition on error. Both run under the machine's lock and must not call
// back into the machine. Use OnTransition for callbacks that need to.
//
// # Error Handling
//
//	if statemachine.IsNoTransition(err) { /* event not valid here */ }
//	if statemachine.IsRejected(err)     { /* a guard said no */ }
//	if errors.Is(err, statemachine.ErrActionFailed) { /* action failed */ }
package statemachine
