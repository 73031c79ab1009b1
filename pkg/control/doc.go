// Package control models a tree of form controls: named leaf controls holding
// a value, and groups holding child controls.
//
// Every control exposes its state as a signal.Signal[State] so adapters can
// watch status, value, error and interaction flag changes. A control owns at
// most one AsyncValidator. Validate starts it, flips the control to
// StatusPending, and applies the result only if no newer Validate call or
// detachment happened in the meantime (last write wins per control).
//
// Group status is derived from the group's own errors and its children, with
// the following precedence: disabled, own validation pending, own errors,
// any child pending, any child invalid, valid.
//
// Errors are stored as a map. Validators driven by a validation suite write
// message lists under ErrorsKey and WarningsKey; any other keys are treated
// as foreign error flags and flattened into messages by Errors.Messages.
//
// User input goes through Input, which honors the control's UpdateOn
// timing: with UpdateOnBlur or UpdateOnSubmit the value is buffered until
// Blur or Commit. SetValue is the programmatic path and never marks the
// control dirty.
package control
