// Package form binds a typed model to a tree of controls and a validation
// suite, and publishes one consolidated FormState.
//
// Every registered field gets an async validator that invokes the suite for
// that field after a debounce window and writes the field's errors and
// warnings onto its control. Validators are created lazily, cached per field
// path and discarded when the suite or the debounce changes. A newer
// validation of a field always wins; results of superseded runs are dropped.
// Rules registered against suite.RootKey are evaluated on every model change
// and reported under FormState.Root.
//
// # Usage
//
//	signup := suite.New(func(s *suite.Context, m Signup) {
//	    s.Apply(
//	        suite.Required("email", m.Email, "Email is required"),
//	        suite.Email("email", m.Email, "Email must be a valid email address"),
//	    )
//	    s.Test(suite.RootKey, "Passwords must match", func() bool {
//	        return m.Password == m.ConfirmPassword
//	    })
//	})
//
//	f, err := form.New(Signup{}, signup, form.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	_, _ = f.Register("email", control.WithUpdateOn(control.UpdateOnBlur))
//	_ = f.Input("email", "user@example.com")
//	_ = f.Blur("email")
//
//	state, err := f.Submit(ctx)
//	if state.Valid {
//	    save(f.Value())
//	}
//
// The model is shaped through its JSON encoding (github.com/goccy/go-json),
// so field paths follow the model's json tags. map[string]any models are
// used as they are.
//
// # Display
//
// Field returns a fieldstate.Field for template bindings; Policy wraps it in
// a display.Policy that decides when errors become visible.
//
// # Error Handling
//
// Validation problems never surface as Go errors. A suite that panics is
// recovered and reported as FormState.Root.InternalError; an async test
// that fails marks its field invalid with the failure message. Methods
// return errors only for misuse: invalid paths (ErrInvalidPath), unknown
// fields (ErrFieldNotFound), duplicate registration (ErrFieldExists), models
// that are not objects (ErrUnsupportedModel) and use after Close (ErrClosed).
//
// # Dependencies
//
// WithDependencies is the deprecated dependency-trigger map. Prefer letting
// the suite include dependent fields with Include(field).When(trigger): a
// run for the trigger also writes the included fields' messages onto their
// controls, unless one of them has started its own validation meanwhile.
package form
