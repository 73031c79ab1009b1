// Package formkit is a reactive form-validation toolkit for Go services.
//
// A form binds a typed model to a tree of controls and re-runs a validation
// suite whenever a bound value changes. Results are fanned back out to the
// controls as per-field errors and warnings, and aggregated into a single
// form state: validity, pending work, error counts and the first invalid
// field.
//
// Packages:
//
//   - pkg/form: orchestration core. Registers fields by path, caches one
//     debounced validator per field, keeps the model in sync with the
//     controls and publishes FormState.
//   - pkg/suite: the validation suite contract and a declarative rule engine
//     with sync, async and warning tests.
//   - pkg/control: leaf controls and groups with status, interaction flags,
//     update timing and last-write-wins async validation.
//   - pkg/fieldstate: per-field read model resolved by path.
//   - pkg/display: error-display modes deciding when messages become visible.
//   - pkg/valuepath: dotted-path access to nested map models.
//   - pkg/signal, pkg/async, pkg/statemachine: reactive values, futures and
//     the dependency-trigger lifecycle.
//   - pkg/availability: uniqueness checks for async rules, in memory or in
//     Redis.
//
// Basic usage:
//
//	s := suite.New(func(s *suite.Context, m Signup) {
//		s.Apply(
//			suite.Required("email", m.Email, "Email is required"),
//			suite.Email("email", m.Email, "Email must be a valid email address"),
//		)
//	})
//
//	f, err := form.New(Signup{}, s)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	if _, err := f.Register("email"); err != nil {
//		return err
//	}
//	_ = f.Input("email", "not-an-email")
//
//	st, _ := f.Validate(ctx)
//	fmt.Println(st.Errors["email"]) // [Email must be a valid email address]
//
// cmd/formdemo serves signup forms built from these packages over HTTP.
package formkit
