package suite

import "slices"

// RootKey is the synthetic field name that carries cross-field issues not
// attributable to a single control.
const RootKey = "@root"

// Result holds the messages produced by one suite invocation, keyed by field
// path. A nil *Result reads as valid and empty.
type Result struct {
	errors   map[string][]string
	warnings map[string][]string
	fields   []string
	tested   []string
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{
		errors:   make(map[string][]string),
		warnings: make(map[string][]string),
	}
}

func (r *Result) track(field string) {
	if _, ok := r.errors[field]; ok {
		return
	}
	if _, ok := r.warnings[field]; ok {
		return
	}
	r.fields = append(r.fields, field)
}

// AddError records a failing test message for field.
func (r *Result) AddError(field, message string) {
	r.track(field)
	r.errors[field] = append(r.errors[field], message)
}

// AddWarning records an advisory message for field.
func (r *Result) AddWarning(field, message string) {
	r.track(field)
	r.warnings[field] = append(r.warnings[field], message)
}

// IsValid reports whether no field carries an error.
func (r *Result) IsValid() bool {
	if r == nil {
		return true
	}
	for _, msgs := range r.errors {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// IsValidField reports whether field carries no error.
func (r *Result) IsValidField(field string) bool {
	return !r.HasErrors(field)
}

// HasErrors reports whether field carries at least one error.
func (r *Result) HasErrors(field string) bool {
	return r != nil && len(r.errors[field]) > 0
}

// HasWarnings reports whether field carries at least one warning.
func (r *Result) HasWarnings(field string) bool {
	return r != nil && len(r.warnings[field]) > 0
}

// Errors returns a copy of the error map.
func (r *Result) Errors() map[string][]string {
	if r == nil {
		return map[string][]string{}
	}
	return cloneMessages(r.errors)
}

// Warnings returns a copy of the warning map.
func (r *Result) Warnings() map[string][]string {
	if r == nil {
		return map[string][]string{}
	}
	return cloneMessages(r.warnings)
}

// ErrorsFor returns the error messages recorded for field.
func (r *Result) ErrorsFor(field string) []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.errors[field]...)
}

// WarningsFor returns the warning messages recorded for field.
func (r *Result) WarningsFor(field string) []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.warnings[field]...)
}

// Fields lists fields with at least one message, in the order they were first
// reported.
func (r *Result) Fields() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.fields...)
}

// ErrorCount returns the total number of error messages.
func (r *Result) ErrorCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, msgs := range r.errors {
		n += len(msgs)
	}
	return n
}

// MarkTested records that the tests of field ran in this invocation, even
// if none of them failed.
func (r *Result) MarkTested(field string) {
	if slices.Contains(r.tested, field) {
		return
	}
	r.tested = append(r.tested, field)
}

// Tested lists the fields whose tests ran, in the order they were first
// evaluated.
func (r *Result) Tested() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.tested...)
}

// Merge appends every message of other into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, field := range other.tested {
		r.MarkTested(field)
	}
	for _, field := range other.fields {
		for _, msg := range other.errors[field] {
			r.AddError(field, msg)
		}
		for _, msg := range other.warnings[field] {
			r.AddWarning(field, msg)
		}
	}
}

func cloneMessages(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		if len(v) == 0 {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}
