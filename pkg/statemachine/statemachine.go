package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Action runs while a transition is applied. Returning an error aborts the
// transition. Actions run under the machine's lock and must not call back
// into it.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E) error

// Guard vetoes a transition by returning false.
type Guard[S, E comparable] func(ctx context.Context, from S, event E) bool

// Transition is a state change triggered by an event.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // all must pass
	Actions []Action[S, E] // run in order before the state changes
}

// Machine is a concurrency-safe finite state machine over comparable state
// and event types.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]Transition[S, E]
	observers   []func(from, to S, event E)
}

// New creates a machine starting in initial.
func New[S, E comparable](initial S, opts ...Option[S, E]) (*Machine[S, E], error) {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on a misconfigured option.
func MustNew[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in any of states.
func (m *Machine[S, E]) Is(states ...S) bool {
	current := m.Current()
	for _, s := range states {
		if s == current {
			return true
		}
	}
	return false
}

// AddTransition registers a transition. Several transitions may share a
// from/event pair; the first whose guards pass wins.
func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[t.From]; !ok {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E) error {
	m.mu.Lock()

	from := m.current
	candidates := m.transitions[from][event]
	if len(candidates) == 0 {
		m.mu.Unlock()
		return &NoTransitionError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}

	t := m.pickLocked(ctx, candidates)
	if t == nil {
		m.mu.Unlock()
		return &RejectedError{State: fmt.Sprint(from), Event: fmt.Sprint(event)}
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, t.To, event); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrActionFailed, err)
		}
	}

	m.current = t.To
	observers := m.observers
	m.mu.Unlock()

	for _, fn := range observers {
		fn(from, t.To, event)
	}
	return nil
}

// CanFire reports whether event would be accepted in the current state.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pickLocked(ctx, m.transitions[m.current][event]) != nil
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine[S, E]) pickLocked(ctx context.Context, candidates []Transition[S, E]) *Transition[S, E] {
	for i, t := range candidates {
		passed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, m.current, t.Event) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}
