package form

import "errors"

var (
	ErrNilSuite         = errors.New("form: nil validation suite")
	ErrInvalidPath      = errors.New("form: invalid field path")
	ErrFieldExists      = errors.New("form: field already registered")
	ErrFieldNotFound    = errors.New("form: field not registered")
	ErrUnsupportedModel = errors.New("form: model must encode to a JSON object")
	ErrClosed           = errors.New("form: form is closed")
)
