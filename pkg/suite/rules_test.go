package suite_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/suite"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule suite.Rule
		want bool
	}{
		{"required filled", suite.Required("f", "x", ""), true},
		{"required blank", suite.Required("f", "  ", ""), false},
		{"required value zero", suite.RequiredValue("f", 0, ""), false},
		{"required value set", suite.RequiredValue("f", 3, ""), true},
		{"email valid", suite.Email("f", "user@example.com", ""), true},
		{"email missing at", suite.Email("f", "not-an-email", ""), false},
		{"email no dot domain", suite.Email("f", "user@localhost", ""), false},
		{"email display name", suite.Email("f", "User <user@example.com>", ""), false},
		{"email empty", suite.Email("f", "", ""), false},
		{"min len ok", suite.MinLen("f", "Abc12345", 8, ""), true},
		{"min len counts runes", suite.MinLen("f", "ééé", 3, ""), true},
		{"min len short", suite.MinLen("f", "abc", 8, ""), false},
		{"max len ok", suite.MaxLen("f", "abc", 3, ""), true},
		{"max len long", suite.MaxLen("f", "abcd", 3, ""), false},
		{"matches", suite.Matches("f", "abc123", regexp.MustCompile(`^[a-z0-9]+$`), ""), true},
		{"does not match", suite.Matches("f", "ABC", regexp.MustCompile(`^[a-z]+$`), ""), false},
		{"equal", suite.Equal("f", "a", "a", ""), true},
		{"not equal", suite.Equal("f", "a", "b", ""), false},
		{"min ok", suite.Min("f", 18, 18, ""), true},
		{"min low", suite.Min("f", 17.5, 18, ""), false},
		{"max ok", suite.Max("f", 3, 5, ""), true},
		{"max high", suite.Max("f", 6, 5, ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Check())
		})
	}
}

func TestRules_Messages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "field is required", suite.Required("f", "", "").Message)
	assert.Equal(t, "Email is required", suite.Required("f", "", "Email is required").Message)
	assert.Equal(t, "must be at least 8 characters long", suite.MinLen("f", "", 8, "").Message)
	assert.Equal(t, "must be at least 18", suite.Min("f", 1, 18, "").Message)

	r := suite.Required("f", "", "").AsWarning()
	assert.True(t, r.Warning)
	assert.Equal(t, "f", r.Field)
}
