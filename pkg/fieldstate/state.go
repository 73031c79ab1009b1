package fieldstate

import "github.com/dmitrymomot/formkit/pkg/control"

// State returns the raw control state last observed.
func (f *Field) State() control.State { return f.state.Get() }

// ErrorMessages returns the field's error messages.
func (f *Field) ErrorMessages() []string { return f.State().Errors.Messages() }

// WarningMessages returns the field's warning messages.
func (f *Field) WarningMessages() []string { return f.State().Errors.Warnings() }

func (f *Field) IsValid() bool     { return f.State().Valid() }
func (f *Field) IsInvalid() bool   { return f.State().Invalid() }
func (f *Field) IsPending() bool   { return f.State().Pending() }
func (f *Field) IsDisabled() bool  { return f.State().Disabled() }
func (f *Field) IsTouched() bool   { return f.State().Touched }
func (f *Field) IsDirty() bool     { return f.State().Dirty }
func (f *Field) IsPristine() bool  { return !f.State().Dirty }
func (f *Field) HasErrors() bool   { return len(f.ErrorMessages()) > 0 }
func (f *Field) HasWarnings() bool { return len(f.WarningMessages()) > 0 }

// IsValidAndTouched reports a valid field the user has interacted with.
func (f *Field) IsValidAndTouched() bool {
	st := f.State()
	return st.Valid() && st.Touched
}

// ShouldShowValidation reports whether validation feedback is settled
// enough to render: the field is touched and not pending.
func (f *Field) ShouldShowValidation() bool {
	st := f.State()
	return st.Touched && !st.Pending()
}
