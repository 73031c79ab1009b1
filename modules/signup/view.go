package signup

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/form"
)

// FieldView is the client-facing state of one field. Errors holds only the
// messages the display mode allows to be shown.
type FieldView struct {
	Value    any            `json:"value"`
	Status   control.Status `json:"status"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Touched  bool           `json:"touched"`
	Dirty    bool           `json:"dirty"`
}

// FormView is the client-facing state of a form session.
type FormView struct {
	ID                uuid.UUID            `json:"id"`
	Mode              display.Mode         `json:"mode"`
	Status            control.Status       `json:"status"`
	Valid             bool                 `json:"valid"`
	Pending           bool                 `json:"pending"`
	Submitted         bool                 `json:"submitted"`
	Dirty             bool                 `json:"dirty"`
	ErrorCount        int                  `json:"errorCount"`
	WarningCount      int                  `json:"warningCount"`
	FirstInvalidField string               `json:"firstInvalidField,omitempty"`
	RootErrors        []string             `json:"rootErrors,omitempty"`
	Fields            map[string]FieldView `json:"fields"`
}

// Render builds the view of f, gating field errors by mode.
func Render(f *form.Form[Signup], mode display.Mode) FormView {
	st := f.State()
	v := FormView{
		ID:                f.ID(),
		Mode:              mode,
		Status:            st.Status,
		Valid:             st.Valid,
		Pending:           st.Pending,
		Submitted:         st.Submitted,
		Dirty:             st.Dirty,
		ErrorCount:        st.ErrorCount,
		WarningCount:      st.WarningCount,
		FirstInvalidField: st.FirstInvalidField,
		RootErrors:        st.Root.Errors,
		Fields:            make(map[string]FieldView),
	}
	for _, path := range f.Paths() {
		field := f.Field(path)
		policy := f.Policy(path, mode)
		cs := field.State()
		v.Fields[path] = FieldView{
			Value:    cs.Value,
			Status:   cs.Status,
			Errors:   policy.Errors(),
			Warnings: policy.Warnings(),
			Touched:  cs.Touched,
			Dirty:    cs.Dirty,
		}
	}
	return v
}
