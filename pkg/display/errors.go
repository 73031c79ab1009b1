package display

import "errors"

var ErrUnknownMode = errors.New("display: unknown error display mode")
