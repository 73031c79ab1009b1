package form

import (
	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// RootState holds the issues not attributable to a single field.
type RootState struct {
	Errors   []string
	Warnings []string
	// InternalError is set when the suite itself failed. It is also the
	// last entry of Errors.
	InternalError string
}

// FormState is an immutable snapshot of a form, recomputed on every change.
type FormState[T any] struct {
	Value             T
	Errors            map[string][]string
	Warnings          map[string][]string
	Root              RootState
	Status            control.Status
	Dirty             bool
	Valid             bool
	Invalid           bool
	Pending           bool
	Disabled          bool
	Idle              bool
	Submitted         bool
	ErrorCount        int
	WarningCount      int
	FirstInvalidField string
}

// FieldSnapshot is the part of a field's control state that feeds FormState.
type FieldSnapshot struct {
	Path     string
	Errors   []string
	Warnings []string
	Disabled bool
}

// Snapshot is the input of ComputeState.
type Snapshot[T any] struct {
	Value T
	// Fields in registration order.
	Fields        []FieldSnapshot
	Root          control.State
	InternalError string
	Submitted     bool
	// Busy reports dependency revalidation scheduled or running.
	Busy bool
}

// ComputeState derives a FormState from s. Counts are recomputed from the
// message lists on every call.
func ComputeState[T any](s Snapshot[T]) FormState[T] {
	st := FormState[T]{
		Value:     s.Value,
		Errors:    make(map[string][]string),
		Warnings:  make(map[string][]string),
		Dirty:     s.Root.Dirty,
		Submitted: s.Submitted,
		Root: RootState{
			Errors:        s.Root.Errors.Messages(),
			Warnings:      s.Root.Errors.Warnings(),
			InternalError: s.InternalError,
		},
	}
	if s.InternalError != "" {
		st.Root.Errors = append(st.Root.Errors, s.InternalError)
	}

	for _, fs := range s.Fields {
		if fs.Disabled {
			continue
		}
		if len(fs.Errors) > 0 {
			st.Errors[fs.Path] = fs.Errors
			st.ErrorCount += len(fs.Errors)
			if st.FirstInvalidField == "" {
				st.FirstInvalidField = fs.Path
			}
		}
		if len(fs.Warnings) > 0 {
			st.Warnings[fs.Path] = fs.Warnings
			st.WarningCount += len(fs.Warnings)
		}
	}
	st.ErrorCount += len(st.Root.Errors)
	st.WarningCount += len(st.Root.Warnings)

	st.Status = s.Root.Status
	if s.InternalError != "" && st.Status == control.StatusValid {
		st.Status = control.StatusInvalid
	}
	st.Valid = st.Status == control.StatusValid
	st.Invalid = !st.Valid
	st.Pending = st.Status == control.StatusPending
	st.Disabled = st.Status == control.StatusDisabled
	st.Idle = !st.Pending && !s.Busy
	return st
}

// snapshot collects the current form inputs of ComputeState.
func (f *Form[T]) snapshot() Snapshot[T] {
	f.mu.RLock()
	paths := make([]string, len(f.order))
	copy(paths, f.order)
	leaves := make([]*control.Control, len(paths))
	for i, p := range paths {
		leaves[i] = f.leaves[p].control
	}
	internal := f.internalErrors[suite.RootKey]
	for _, p := range paths {
		if internal != "" {
			break
		}
		internal = f.internalErrors[p]
	}
	submitted := f.submitted
	f.mu.RUnlock()

	s := Snapshot[T]{
		Value:         f.value.Get(),
		Fields:        make([]FieldSnapshot, 0, len(paths)),
		Root:          f.root.State(),
		InternalError: internal,
		Submitted:     submitted,
		Busy:          f.triggersBusy(),
	}
	for i, c := range leaves {
		st := c.State()
		s.Fields = append(s.Fields, FieldSnapshot{
			Path:     paths[i],
			Errors:   st.Errors.Messages(),
			Warnings: st.Errors.Warnings(),
			Disabled: st.Disabled(),
		})
	}
	return s
}

// recompute publishes a fresh FormState.
func (f *Form[T]) recompute() {
	f.recomputeMu.Lock()
	defer f.recomputeMu.Unlock()
	if f.isClosed() {
		return
	}
	f.state.Set(ComputeState(f.snapshot()))
}
