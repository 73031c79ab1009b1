// Package display decides when a field's already-known errors become
// visible. It performs no validation.
//
// Four modes are supported:
//
//	immediate          errors show as soon as they exist
//	on-blur            errors show once the field is touched
//	on-submit          errors show once the form is submitted
//	on-blur-or-submit  either of the above (default)
//
// # Usage
//
//	p := display.NewPolicy(emailField, f.Submitted, display.WithMode(display.OnSubmit))
//	if p.ShouldShowErrors() {
//	    render(p.Errors())
//	}
//
// A policy configured as on-blur over a control that commits only on submit
// logs a warning at construction; errors would never surface by blur.
package display
