package display

import (
	"fmt"
	"strings"
)

// Mode decides when a field's known errors become visible.
type Mode string

const (
	Immediate      Mode = "immediate"
	OnBlur         Mode = "on-blur"
	OnSubmit       Mode = "on-submit"
	OnBlurOrSubmit Mode = "on-blur-or-submit"

	DefaultMode = OnBlurOrSubmit
)

// Modes lists every display mode.
var Modes = []Mode{Immediate, OnBlur, OnSubmit, OnBlurOrSubmit}

// ParseMode parses a mode name. An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return DefaultMode, nil
	}
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case Immediate, OnBlur, OnSubmit, OnBlurOrSubmit:
		return true
	}
	return false
}

// UnmarshalText lets modes be parsed from configuration.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ShouldShow applies mode to a field's error, touched and form-submitted
// flags. Unknown modes fall back to DefaultMode.
func ShouldShow(mode Mode, hasErrors, touched, submitted bool) bool {
	if !hasErrors {
		return false
	}
	switch mode {
	case Immediate:
		return true
	case OnBlur:
		return touched
	case OnSubmit:
		return submitted
	default:
		return touched || submitted
	}
}
