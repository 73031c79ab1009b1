package control

import "errors"

var (
	ErrNotGroup         = errors.New("control: not a group")
	ErrDuplicateControl = errors.New("control: duplicate control name")
	ErrControlNotFound  = errors.New("control: control not found")
	ErrInvalidName      = errors.New("control: invalid control name")
	ErrSuperseded       = errors.New("control: validation superseded by a newer run")
	ErrDetached         = errors.New("control: control detached from its tree")
)
