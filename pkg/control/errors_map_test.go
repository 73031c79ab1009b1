package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/control"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs control.Errors
		want []string
	}{
		{name: "nil", errs: nil, want: nil},
		{name: "reserved key", errs: control.Errors{control.ErrorsKey: []string{"Email is required"}}, want: []string{"Email is required"}},
		{name: "reserved key wins over foreign keys", errs: control.Errors{control.ErrorsKey: []string{"a"}, "required": true}, want: []string{"a"}},
		{name: "reserved key as any slice", errs: control.Errors{control.ErrorsKey: []any{"a", "b"}}, want: []string{"a", "b"}},
		{name: "foreign flags", errs: control.Errors{"required": true, "email": true}, want: []string{"email", "required"}},
		{
			name: "nested foreign errors flatten to leaf keys",
			errs: control.Errors{"minlength": map[string]any{"requiredLength": 3, "actualLength": 1}, "pattern": true},
			want: []string{"actualLength", "requiredLength", "pattern"},
		},
		{name: "warnings only", errs: control.Errors{control.WarningsKey: []string{"weak"}}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errs.Messages())
			assert.Equal(t, len(tt.want) > 0, tt.errs.HasErrors())
		})
	}
}

func TestErrors_Warnings(t *testing.T) {
	t.Parallel()

	errs := control.NewErrors([]string{"e"}, []string{"w1", "w2"})
	assert.Equal(t, []string{"w1", "w2"}, errs.Warnings())
	assert.Equal(t, []string{"e"}, errs.Messages())

	assert.Nil(t, control.NewErrors(nil, nil))
}

func TestErrors_Clone(t *testing.T) {
	t.Parallel()

	errs := control.NewErrors([]string{"e"}, nil)
	clone := errs.Clone()
	clone[control.ErrorsKey].([]string)[0] = "changed"
	assert.Equal(t, []string{"e"}, errs.Messages())
}
