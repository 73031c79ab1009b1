// Package suite defines the contract between a form and its validation rules,
// and ships a small declarative engine implementing it.
//
// A Suite is invoked with the current model and an optional field name. The
// field name narrows evaluation to tests registered for that field plus any
// tests explicitly included for it. The call returns an *async.Future so a
// suite may answer immediately or after asynchronous checks, and callers
// consume both cases the same way.
//
// # Engine
//
// New builds a Suite from a definition function:
//
//	signup := suite.New(func(s *suite.Context, m Signup) {
//	    s.Include("confirmPassword").When("password")
//
//	    s.Apply(
//	        suite.Required("email", m.Email, "Email is required"),
//	        suite.Email("email", m.Email, "Email must be a valid email address"),
//	    )
//	    s.Test("confirmPassword", "Passwords must match", func() bool {
//	        return m.Password == m.ConfirmPassword
//	    })
//	    s.TestAsync("username", "Username is already taken", func(ctx context.Context) (bool, error) {
//	        taken, err := checker.IsTaken(ctx, m.Username)
//	        return !taken, err
//	    })
//	})
//
// In the default eager mode the first failing test of a field stops further
// tests for that field. WithMode(ModeAll) evaluates every test.
//
// Cross-field rules that belong to no single control are registered against
// RootKey and reported under that key in the Result.
//
// # Error Handling
//
// The engine does not recover panics raised by a definition: a panicking
// suite is a bug in validation logic, and the caller decides how to contain
// it. An async test returning a non-nil error rejects the Future with an
// error wrapping ErrAsyncTest.
package suite
