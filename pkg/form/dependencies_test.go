package form_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

func passwordSuite() suite.Suite[signup] {
	return suite.New(func(s *suite.Context, m signup) {
		s.Test("confirmPassword", "Passwords must match", func() bool {
			return m.Password == m.ConfirmPassword
		})
	})
}

func TestDependencies_RevalidateDependent(t *testing.T) {
	t.Parallel()

	f := newForm(t, signup{}, passwordSuite(),
		form.WithDependencies(map[string][]string{"password": {"confirmPassword"}}),
	)
	register(t, f, "password", "confirmPassword")

	require.NoError(t, f.Input("confirmPassword", "Abc12345"))
	st := settle(t, f)
	require.Equal(t, []string{"Passwords must match"}, st.Errors["confirmPassword"])

	require.NoError(t, f.Input("password", "Abc12345"))
	require.Eventually(t, func() bool {
		st := f.State()
		return st.Valid && st.Idle
	}, 2*time.Second, 5*time.Millisecond)

	assert.Empty(t, f.State().Errors)
	assert.Empty(t, form.InFlight(f))
}

func TestDependencies_WithoutTriggerDependentIsStale(t *testing.T) {
	t.Parallel()

	f := newForm(t, signup{}, passwordSuite())
	register(t, f, "password", "confirmPassword")

	require.NoError(t, f.Input("confirmPassword", "Abc12345"))
	settle(t, f)
	require.NoError(t, f.Input("password", "Abc12345"))
	st := settle(t, f)

	assert.Equal(t, []string{"Passwords must match"}, st.Errors["confirmPassword"])
}

func TestDependencies_Bidirectional(t *testing.T) {
	t.Parallel()

	s := suite.New(func(s *suite.Context, m signup) {
		s.Test("password", "Password must match confirmation", func() bool {
			return m.Password == m.ConfirmPassword
		})
	})

	tests := []struct {
		name          string
		bidirectional bool
		wantValid     bool
	}{
		{name: "one way", bidirectional: false, wantValid: false},
		{name: "mirrored", bidirectional: true, wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newForm(t, signup{}, s,
				form.WithDependencies(map[string][]string{"password": {"confirmPassword"}}),
				form.WithBidirectionalDependencies(tt.bidirectional),
			)
			register(t, f, "password", "confirmPassword")

			require.NoError(t, f.Input("password", "secret"))
			require.Eventually(t, func() bool { return f.State().Idle }, 2*time.Second, 5*time.Millisecond)
			require.False(t, f.State().Valid)

			require.NoError(t, f.Input("confirmPassword", "secret"))
			require.Eventually(t, func() bool {
				st := f.State()
				return st.Idle && !st.Pending
			}, 2*time.Second, 5*time.Millisecond)
			settle(t, f)

			assert.Equal(t, tt.wantValid, f.State().Valid)
			assert.Empty(t, form.InFlight(f))
		})
	}
}

func TestDependencies_RapidChangesCoalesce(t *testing.T) {
	t.Parallel()

	f := newForm(t, signup{}, passwordSuite(),
		form.WithDependencies(map[string][]string{"password": {"confirmPassword"}}),
	)
	register(t, f, "password", "confirmPassword")
	require.NoError(t, f.Input("confirmPassword", "abcd"))
	settle(t, f)

	for _, v := range []string{"a", "ab", "abc", "abcd"} {
		require.NoError(t, f.Input("password", v))
	}
	require.Eventually(t, func() bool {
		st := f.State()
		return st.Valid && st.Idle
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, form.InFlight(f))
}

func TestDependencies_InvalidEdgesIgnored(t *testing.T) {
	t.Parallel()

	f := newForm(t, signup{}, passwordSuite(),
		form.WithDependencies(map[string][]string{
			"a..b":     {"confirmPassword"},
			"password": {"password", "[bad"},
		}),
	)
	register(t, f, "password", "confirmPassword")

	require.NoError(t, f.Input("password", "x"))
	require.Eventually(t, func() bool { return f.State().Idle }, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, form.InFlight(f))
}

func TestDependencies_ResetStopsTriggers(t *testing.T) {
	t.Parallel()

	f := newForm(t, signup{}, passwordSuite(),
		form.WithDebounce(0),
		form.WithDependencies(map[string][]string{"password": {"confirmPassword"}}),
	)
	register(t, f, "password", "confirmPassword")

	require.NoError(t, f.Input("password", "x"))
	require.NoError(t, f.Reset(signup{}))

	require.Eventually(t, func() bool {
		st := f.State()
		return st.Idle && st.Valid
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, f.State().Dirty)
}

func TestInclusion_RevalidatesIncludedField(t *testing.T) {
	t.Parallel()

	s := suite.New(func(s *suite.Context, m signup) {
		s.Include("confirmPassword").When("password")
		s.Test("confirmPassword", "Passwords must match", func() bool {
			return m.Password == m.ConfirmPassword
		})
	})

	f := newForm(t, signup{}, s)
	register(t, f, "password", "confirmPassword")

	require.NoError(t, f.Input("confirmPassword", "Abc12345"))
	st := settle(t, f)
	require.Equal(t, []string{"Passwords must match"}, st.Errors["confirmPassword"])

	require.NoError(t, f.Input("password", "Abc12345"))
	st = settle(t, f)
	assert.True(t, st.Valid)
	assert.Empty(t, st.Errors)
	assert.Empty(t, f.Find("confirmPassword").Errors().Messages())

	require.NoError(t, f.Input("password", "changed"))
	st = settle(t, f)
	assert.False(t, st.Valid)
	assert.Equal(t, []string{"Passwords must match"}, st.Errors["confirmPassword"])
	assert.Equal(t, "confirmPassword", st.FirstInvalidField)
}

func TestInclusion_NotIncludedFieldIsUntouched(t *testing.T) {
	t.Parallel()

	s := suite.New(func(s *suite.Context, m signup) {
		s.Include("confirmPassword").When("password")
		s.Test("confirmPassword", "Passwords must match", func() bool {
			return m.Password == m.ConfirmPassword
		})
		s.Test("email", "Email is required", func() bool { return m.Email != "" })
	})

	f := newForm(t, signup{}, s)
	register(t, f, "email", "password", "confirmPassword")
	st := settle(t, f)
	require.Equal(t, []string{"Email is required"}, st.Errors["email"])

	f.Find("email").SetErrors(nil)
	require.NoError(t, f.Input("password", "x"))
	st = settle(t, f)

	assert.Empty(t, st.Errors["email"])
	assert.Equal(t, []string{"Passwords must match"}, st.Errors["confirmPassword"])
}
