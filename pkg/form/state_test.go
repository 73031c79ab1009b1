package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestComputeState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		snapshot form.Snapshot[signup]
		check    func(t *testing.T, st form.FormState[signup])
	}{
		{
			name:     "empty form is valid and idle",
			snapshot: form.Snapshot[signup]{Root: control.State{Status: control.StatusValid}},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.True(t, st.Valid)
				assert.False(t, st.Invalid)
				assert.True(t, st.Idle)
				assert.Zero(t, st.ErrorCount)
				assert.Empty(t, st.FirstInvalidField)
			},
		},
		{
			name: "field and root errors are counted",
			snapshot: form.Snapshot[signup]{
				Root: control.State{
					Status: control.StatusInvalid,
					Errors: control.NewErrors([]string{"Passwords must match"}, []string{"Weak"}),
				},
				Fields: []form.FieldSnapshot{
					{Path: "email", Errors: []string{"Email is required"}},
					{Path: "username", Errors: []string{"Too short", "Taken"}, Warnings: []string{"Looks odd"}},
				},
			},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.False(t, st.Valid)
				assert.True(t, st.Invalid)
				assert.Equal(t, 4, st.ErrorCount)
				assert.Equal(t, 2, st.WarningCount)
				assert.Equal(t, "email", st.FirstInvalidField)
				assert.Equal(t, []string{"Passwords must match"}, st.Root.Errors)
				assert.Equal(t, []string{"Weak"}, st.Root.Warnings)
			},
		},
		{
			name: "disabled fields are skipped",
			snapshot: form.Snapshot[signup]{
				Root: control.State{Status: control.StatusInvalid},
				Fields: []form.FieldSnapshot{
					{Path: "bio", Errors: []string{"Bio is required"}, Disabled: true},
					{Path: "email", Errors: []string{"Email is required"}},
				},
			},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.Equal(t, 1, st.ErrorCount)
				assert.Equal(t, "email", st.FirstInvalidField)
				assert.NotContains(t, st.Errors, "bio")
			},
		},
		{
			name: "internal error invalidates",
			snapshot: form.Snapshot[signup]{
				Root:          control.State{Status: control.StatusValid},
				InternalError: "suite execution failed: boom",
			},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.Equal(t, control.StatusInvalid, st.Status)
				assert.False(t, st.Valid)
				assert.Equal(t, []string{"suite execution failed: boom"}, st.Root.Errors)
				assert.Equal(t, 1, st.ErrorCount)
			},
		},
		{
			name: "pending and busy are not idle",
			snapshot: form.Snapshot[signup]{
				Root: control.State{Status: control.StatusValid},
				Busy: true,
			},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.True(t, st.Valid)
				assert.False(t, st.Idle)
			},
		},
		{
			name: "pending status",
			snapshot: form.Snapshot[signup]{
				Root:      control.State{Status: control.StatusPending, Dirty: true},
				Submitted: true,
			},
			check: func(t *testing.T, st form.FormState[signup]) {
				assert.True(t, st.Pending)
				assert.False(t, st.Valid)
				assert.True(t, st.Invalid)
				assert.False(t, st.Idle)
				assert.True(t, st.Dirty)
				assert.True(t, st.Submitted)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, form.ComputeState(tt.snapshot))
		})
	}
}

func TestComputeState_CountsMatchMessages(t *testing.T) {
	t.Parallel()

	s := form.Snapshot[signup]{
		Root: control.State{
			Status: control.StatusInvalid,
			Errors: control.NewErrors([]string{"a", "b"}, nil),
		},
		Fields: []form.FieldSnapshot{
			{Path: "x", Errors: []string{"1", "2", "3"}},
			{Path: "y", Warnings: []string{"w"}},
		},
		InternalError: "boom",
	}
	st := form.ComputeState(s)

	total := len(st.Root.Errors)
	for _, msgs := range st.Errors {
		total += len(msgs)
	}
	assert.Equal(t, total, st.ErrorCount)

	warnings := len(st.Root.Warnings)
	for _, msgs := range st.Warnings {
		warnings += len(msgs)
	}
	assert.Equal(t, warnings, st.WarningCount)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	f, err := form.NewFromConfig(signup{}, emailSuite(), form.Config{
		DebounceTime:     0,
		ErrorDisplayMode: "on-submit",
	})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, "on-submit", string(f.Policy("email", "").Mode()))
}
