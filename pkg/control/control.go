package control

import (
	"context"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/signal"
)

// AsyncValidator computes the errors of c. The context is cancelled when a
// newer validation supersedes this one or the control is detached.
type AsyncValidator func(ctx context.Context, c *Control) *async.Future[Errors]

// Control is a leaf control or a group of controls.
type Control struct {
	mu        sync.RWMutex
	publishMu sync.Mutex

	name     string
	path     string
	parent   *Control
	group    bool
	children map[string]*Control
	order    []string

	value      any
	initial    any
	buffered   any
	hasPending bool

	errors   Errors
	touched  bool
	dirty    bool
	disabled bool
	updateOn UpdateOn

	validator  AsyncValidator
	validating bool
	gen        uint64
	cancel     context.CancelFunc
	idle       chan struct{}
	detached   bool

	state *signal.Signal[State]
}

// New creates a leaf control holding value.
func New(name string, value any, opts ...Option) *Control {
	c := newControl(name, false, opts...)
	c.value = value
	c.initial = value
	c.state = signal.New(c.snapshot())
	return c
}

// NewGroup creates an empty group.
func NewGroup(name string, opts ...Option) *Control {
	c := newControl(name, true, opts...)
	c.children = make(map[string]*Control)
	c.state = signal.New(c.snapshot())
	return c
}

func newControl(name string, group bool, opts ...Option) *Control {
	idle := make(chan struct{})
	close(idle)
	c := &Control{
		name:     name,
		group:    group,
		updateOn: UpdateOnChange,
		idle:     idle,
		path:     name,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the control's own name.
func (c *Control) Name() string {
	return c.name
}

// Path returns the dot-joined names from the root group (excluded) down to c.
func (c *Control) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Parent returns the enclosing group, or nil for a root.
func (c *Control) Parent() *Control {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.parent
}

// IsGroup reports whether c holds children.
func (c *Control) IsGroup() bool {
	return c.group
}

// Changes exposes the control's state signal.
func (c *Control) Changes() *signal.Signal[State] {
	return c.state
}

// State returns a fresh snapshot.
func (c *Control) State() State {
	return c.snapshot()
}

func (c *Control) Status() Status     { return c.snapshot().Status }
func (c *Control) Value() any         { return c.snapshot().Value }
func (c *Control) Errors() Errors     { return c.snapshot().Errors }
func (c *Control) Touched() bool      { return c.snapshot().Touched }
func (c *Control) Dirty() bool        { return c.snapshot().Dirty }
func (c *Control) Pristine() bool     { return !c.Dirty() }
func (c *Control) UpdateOn() UpdateOn { return c.snapshot().UpdateOn }

// Detached reports whether c was removed from its tree.
func (c *Control) Detached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detached
}

func (c *Control) snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := State{
		Name:     c.name,
		Status:   c.statusLocked(),
		Errors:   c.errors.Clone(),
		Touched:  c.touched,
		Dirty:    c.dirty,
		UpdateOn: c.updateOn,
	}
	if !c.group {
		st.Value = c.value
	} else {
		values := make(map[string]any, len(c.order))
		for _, name := range c.order {
			child := c.children[name].snapshot()
			values[name] = child.Value
			st.Touched = st.Touched || child.Touched
			st.Dirty = st.Dirty || child.Dirty
		}
		st.Value = values
	}
	st.Path = c.path
	return st
}

func (c *Control) statusLocked() Status {
	if c.disabled {
		return StatusDisabled
	}
	if c.validating {
		return StatusPending
	}
	if c.errors.HasErrors() {
		return StatusInvalid
	}
	if !c.group || len(c.order) == 0 {
		return StatusValid
	}

	var pending, invalid bool
	allDisabled := true
	for _, name := range c.order {
		child := c.children[name]
		child.mu.RLock()
		s := child.statusLocked()
		child.mu.RUnlock()
		switch s {
		case StatusPending:
			pending = true
		case StatusInvalid:
			invalid = true
		}
		if s != StatusDisabled {
			allDisabled = false
		}
	}
	switch {
	case pending:
		return StatusPending
	case invalid:
		return StatusInvalid
	case allDisabled:
		return StatusDisabled
	default:
		return StatusValid
	}
}

// publish pushes a fresh snapshot to the state signal. Watchers run while
// publishMu is held, which keeps snapshots ordered.
func (c *Control) publish() {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	c.state.Set(c.snapshot())
}

// refresh republishes c and every ancestor.
func (c *Control) refresh() {
	for n := c; n != nil; n = n.Parent() {
		if n.Detached() {
			return
		}
		n.publish()
	}
}
