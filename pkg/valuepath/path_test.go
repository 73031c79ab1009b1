package valuepath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"email", true},
		{"user.email", true},
		{"items.0.name", true},
		{"_private.a1", true},
		{"0", true},
		{"", false},
		{".email", false},
		{"email.", false},
		{"user..email", false},
		{"1abc", false},
		{"user-name", false},
		{"user name", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, valuepath.IsValid(tt.path))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "already normalized", in: "user.email", want: "user.email", ok: true},
		{name: "surrounding whitespace", in: "  user.email ", want: "user.email", ok: true},
		{name: "bracket index", in: "items[0].name", want: "items.0.name", ok: true},
		{name: "nested brackets", in: "grid[1][2]", want: "grid.1.2", ok: true},
		{name: "double dot", in: "a..b", ok: false},
		{name: "trailing dot", in: "a.", ok: false},
		{name: "garbage after bracket", in: "a[0]b", ok: false},
		{name: "named bracket", in: "address[zip]", want: "address.zip", ok: true},
		{name: "unclosed index", in: "a[0", ok: false},
		{name: "unclosed name", in: "a[b", ok: false},
		{name: "unclosed before dot", in: "a[0.b]", ok: false},
		{name: "stray closing bracket", in: "a]", ok: false},
		{name: "nested open bracket", in: "a[[0]]", ok: false},
		{name: "empty", in: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := valuepath.Normalize(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_IndexLimit(t *testing.T) {
	t.Parallel()

	_, err := valuepath.Split("items.10001")
	assert.ErrorIs(t, err, valuepath.ErrIndexOutOfRange)

	segs, err := valuepath.Split("items.10000")
	assert.NoError(t, err)
	assert.Equal(t, []string{"items", "10000"}, segs)
}
