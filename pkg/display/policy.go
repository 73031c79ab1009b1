package display

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// FieldState is the per-field read model a Policy decides on.
type FieldState interface {
	Path() string
	State() control.State
	HasErrors() bool
	IsTouched() bool
	ErrorMessages() []string
	WarningMessages() []string
}

// Option configures a Policy.
type Option func(*Policy)

// WithMode sets the display mode. Invalid modes are ignored.
func WithMode(m Mode) Option {
	return func(p *Policy) {
		if m.Valid() {
			p.mode = m
		}
	}
}

// WithLogger sets the logger that receives configuration warnings.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) { p.log = logger.OrNop(l) }
}

// Policy gates a field's messages by display mode.
type Policy struct {
	field     FieldState
	submitted func() bool
	mode      Mode
	log       *slog.Logger
}

// NewPolicy creates a policy for field. submitted reports whether the owning
// form has been submitted; nil means never.
func NewPolicy(field FieldState, submitted func() bool, opts ...Option) *Policy {
	if submitted == nil {
		submitted = func() bool { return false }
	}
	p := &Policy{
		field:     field,
		submitted: submitted,
		mode:      DefaultMode,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.CheckConfig()
	return p
}

// Mode returns the configured display mode.
func (p *Policy) Mode() Mode {
	return p.mode
}

// CheckConfig reports, and logs as a warning, a mode that can never show
// errors on blur because the control commits input only on submit.
func (p *Policy) CheckConfig() bool {
	if p.mode != OnBlur || p.field.State().UpdateOn != control.UpdateOnSubmit {
		return true
	}
	p.log.Warn("display mode on-blur with submit update timing: errors are unreachable by blur",
		logger.Component("display"),
		logger.Field(p.field.Path()),
		logger.Mode(p.mode),
	)
	return false
}

// ShouldShowErrors reports whether the field's errors should be visible now.
func (p *Policy) ShouldShowErrors() bool {
	return ShouldShow(p.mode, p.field.HasErrors(), p.field.IsTouched(), p.submitted())
}

// Errors returns the field's error messages when they should be visible.
func (p *Policy) Errors() []string {
	if !p.ShouldShowErrors() {
		return nil
	}
	return p.field.ErrorMessages()
}

// Warnings returns the field's warnings under the same timing as errors.
func (p *Policy) Warnings() []string {
	warnings := p.field.WarningMessages()
	if !ShouldShow(p.mode, len(warnings) > 0, p.field.IsTouched(), p.submitted()) {
		return nil
	}
	return warnings
}
