package statemachine

// Option configures a machine during construction.
type Option[S, E comparable] func(*Machine[S, E]) error

// TransitionOption configures a single transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// WithTransition adds a transition from from to to on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.AddTransition(t)
		return nil
	}
}

// WithTransitions adds several transitions at once.
func WithTransitions[S, E comparable](transitions ...Transition[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) error {
		for _, t := range transitions {
			m.AddTransition(t)
		}
		return nil
	}
}

// OnTransition registers fn to run after every successful transition,
// outside the machine's lock.
func OnTransition[S, E comparable](fn func(from, to S, event E)) Option[S, E] {
	return func(m *Machine[S, E]) error {
		if fn == nil {
			return ErrNilObserver
		}
		m.observers = append(m.observers, fn)
		return nil
	}
}

// WithGuard adds guards to a transition.
func WithGuard[S, E comparable](guards ...Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		for _, g := range guards {
			if g != nil {
				t.Guards = append(t.Guards, g)
			}
		}
	}
}

// WithAction adds actions to a transition.
func WithAction[S, E comparable](actions ...Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		for _, a := range actions {
			if a != nil {
				t.Actions = append(t.Actions, a)
			}
		}
	}
}
