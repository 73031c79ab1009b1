package form

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// DefaultDebounce is the validation debounce applied when none is set.
const DefaultDebounce = 50 * time.Millisecond

// Option configures a Form.
type Option func(*options)

type options struct {
	id            uuid.UUID
	debounce      time.Duration
	displayMode   display.Mode
	dependencies  map[string][]string
	bidirectional bool
	log           *slog.Logger
}

func defaultOptions() options {
	return options{
		debounce:    DefaultDebounce,
		displayMode: display.DefaultMode,
		log:         logger.Nop(),
	}
}

// WithID sets the form instance ID. A random ID is generated otherwise.
func WithID(id uuid.UUID) Option {
	return func(o *options) { o.id = id }
}

// WithDebounce sets the window that coalesces rapid value changes into one
// suite invocation. Zero disables debouncing; negative values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithErrorDisplayMode sets the default mode of policies created by
// Form.Policy. Invalid modes are ignored.
func WithErrorDisplayMode(m display.Mode) Option {
	return func(o *options) {
		if m.Valid() {
			o.displayMode = m
		}
	}
}

// WithDependencies sets the dependency-trigger map: whenever a trigger field
// settles after a value change, each listed dependent is revalidated.
//
// Deprecated: let the suite include dependent fields with
// Include(field).When(trigger) instead.
func WithDependencies(deps map[string][]string) Option {
	return func(o *options) {
		o.dependencies = make(map[string][]string, len(deps))
		for trigger, dependents := range deps {
			o.dependencies[trigger] = append([]string(nil), dependents...)
		}
	}
}

// WithBidirectionalDependencies makes every dependency edge also trigger
// in reverse, so fixing a dependent revalidates its trigger.
func WithBidirectionalDependencies(enabled bool) Option {
	return func(o *options) { o.bidirectional = enabled }
}

// WithLogger sets the diagnostics logger. Forms are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = logger.OrNop(l) }
}
