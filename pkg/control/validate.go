package control

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// SetValidator replaces the control's async validator. It does not
// revalidate.
func (c *Control) SetValidator(v AsyncValidator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validator = v
}

// Validate runs the validator and returns a future for the applied errors.
// The control reports StatusPending until the newest run completes. A run
// superseded by a later Validate, Reset, Disable or detachment completes with
// ErrSuperseded and leaves the control untouched. A validator failure is
// applied as a single error message.
func (c *Control) Validate(ctx context.Context) *async.Future[Errors] {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return async.Resolved[Errors](nil, ErrDetached)
	}
	if c.disabled || c.validator == nil {
		errs := c.errors.Clone()
		c.mu.Unlock()
		c.refresh()
		return async.Resolved(errs, nil)
	}

	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	if !c.validating {
		c.validating = true
		c.idle = make(chan struct{})
	}
	validator := c.validator
	c.mu.Unlock()

	c.refresh()

	pending := validator(runCtx, c)
	if pending == nil {
		pending = async.Resolved[Errors](nil, nil)
	}

	return async.Async(context.Background(), pending, func(_ context.Context, f *async.Future[Errors]) (Errors, error) {
		errs, err := f.Await()
		if err != nil {
			errs = NewErrors([]string{err.Error()}, nil)
		}
		if !c.apply(gen, errs) {
			return nil, ErrSuperseded
		}
		return errs, nil
	})
}

// apply stores errs if gen is still the newest run.
func (c *Control) apply(gen uint64, errs Errors) bool {
	c.mu.Lock()
	if c.detached || gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.errors = errs.Clone()
	c.validating = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	idle := c.idle
	c.mu.Unlock()

	c.refresh()
	c.release(idle)
	return true
}

// release wakes Settled waiters once the new state has been published.
func (c *Control) release(idle chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	closeOnce(idle)
}

func (c *Control) markIdleLocked() {
	closeOnce(c.idle)
}

// closeOnce must be called with the owning control's lock held.
func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// Settled blocks until neither c nor any descendant has a validation in
// flight, or ctx is done.
func (c *Control) Settled(ctx context.Context) error {
	for _, n := range append(c.descendants(), c) {
		for {
			n.mu.RLock()
			idle := n.idle
			n.mu.RUnlock()

			select {
			case <-idle:
			case <-ctx.Done():
				return ctx.Err()
			}

			// a new run may have started between the close and our check
			n.mu.RLock()
			busy := n.validating
			n.mu.RUnlock()
			if !busy {
				break
			}
		}
	}
	return nil
}

// Validating reports whether a validation run is in flight.
func (c *Control) Validating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validating
}
