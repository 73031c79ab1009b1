// Package fieldstate presents one form control as a single read model:
// status, interaction flags and the error and warning messages written by
// the validation suite.
//
// A Field is bound to a path, not to a control instance. Controls come and
// go as the form is restructured; calling Sync re-resolves the path,
// re-subscribes when the control changed and otherwise republishes only
// when touched or dirty changed.
//
// # Usage
//
//	email := fieldstate.New("email", root)
//	defer email.Close()
//
//	if email.ShouldShowValidation() && email.HasErrors() {
//	    render(email.ErrorMessages())
//	}
//
// Messages come from the control's errors object: the reserved "errors" and
// "warnings" keys first, otherwise every other key is flattened into the
// error list.
package fieldstate
