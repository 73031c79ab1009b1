package control

// Option configures a control at construction.
type Option func(*Control)

// WithUpdateOn sets the commit timing of user input.
func WithUpdateOn(u UpdateOn) Option {
	return func(c *Control) {
		switch u {
		case UpdateOnChange, UpdateOnBlur, UpdateOnSubmit:
			c.updateOn = u
		}
	}
}

// WithValidator attaches an async validator.
func WithValidator(v AsyncValidator) Option {
	return func(c *Control) { c.validator = v }
}

// WithDisabled creates the control disabled.
func WithDisabled() Option {
	return func(c *Control) { c.disabled = true }
}
