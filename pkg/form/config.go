package form

import (
	"time"

	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// Config is the environment-driven form configuration.
type Config struct {
	DebounceTime              time.Duration `env:"FORM_DEBOUNCE_TIME" envDefault:"50ms"`
	ErrorDisplayMode          display.Mode  `env:"FORM_ERROR_DISPLAY_MODE" envDefault:"on-blur-or-submit"`
	BidirectionalDependencies bool          `env:"FORM_BIDIRECTIONAL_DEPENDENCIES" envDefault:"false"`
}

// NewFromConfig creates a form configured by cfg. Options passed explicitly
// are applied after the configuration and take precedence.
func NewFromConfig[T any](initial T, s suite.Suite[T], cfg Config, opts ...Option) (*Form[T], error) {
	configOpts := []Option{
		WithDebounce(cfg.DebounceTime),
		WithErrorDisplayMode(cfg.ErrorDisplayMode),
		WithBidirectionalDependencies(cfg.BidirectionalDependencies),
	}
	return New(initial, s, append(configOpts, opts...)...)
}
