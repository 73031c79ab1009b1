package signup

import "errors"

var (
	ErrSessionNotFound = errors.New("signup: form session not found")
	ErrUnknownField    = errors.New("signup: unknown field")
	ErrInvalidValue    = errors.New("signup: invalid field value")
	ErrInvalidRequest  = errors.New("signup: invalid request body")
)
