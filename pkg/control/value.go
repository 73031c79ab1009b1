package control

import "context"

// SetValue writes v programmatically and revalidates. It does not mark the
// control dirty and discards any buffered input.
func (c *Control) SetValue(v any) {
	c.mu.Lock()
	if c.group || c.detached {
		c.mu.Unlock()
		return
	}
	c.value = v
	c.buffered = nil
	c.hasPending = false
	c.mu.Unlock()

	c.Validate(context.Background())
}

// Input records user input. With UpdateOnChange the value is committed at
// once; otherwise it is buffered until Blur or Commit.
func (c *Control) Input(v any) {
	c.mu.Lock()
	if c.group || c.detached {
		c.mu.Unlock()
		return
	}
	if c.updateOn != UpdateOnChange {
		c.buffered = v
		c.hasPending = true
		c.mu.Unlock()
		return
	}
	c.value = v
	c.dirty = true
	c.mu.Unlock()

	c.Validate(context.Background())
}

// Blur marks the control touched and commits input buffered under
// UpdateOnBlur.
func (c *Control) Blur() {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	c.touched = true
	commit := c.updateOn == UpdateOnBlur && c.hasPending
	c.mu.Unlock()

	if commit {
		c.Commit()
		return
	}
	c.refresh()
}

// Commit applies buffered input, if any, marks the control dirty and
// revalidates. It reports whether a value was committed.
func (c *Control) Commit() bool {
	c.mu.Lock()
	if !c.hasPending || c.detached {
		c.mu.Unlock()
		return false
	}
	c.value = c.buffered
	c.buffered = nil
	c.hasPending = false
	c.dirty = true
	c.mu.Unlock()

	c.Validate(context.Background())
	return true
}

// HasPendingInput reports whether input is buffered awaiting commit.
func (c *Control) HasPendingInput() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hasPending
}

// MarkAsTouched sets the touched flag.
func (c *Control) MarkAsTouched() { c.setFlags(func(c *Control) { c.touched = true }) }

// MarkAsUntouched clears the touched flag.
func (c *Control) MarkAsUntouched() { c.setFlags(func(c *Control) { c.touched = false }) }

// MarkAsDirty sets the dirty flag.
func (c *Control) MarkAsDirty() { c.setFlags(func(c *Control) { c.dirty = true }) }

// MarkAsPristine clears the dirty flag.
func (c *Control) MarkAsPristine() { c.setFlags(func(c *Control) { c.dirty = false }) }

// MarkAllAsTouched marks c and every descendant touched.
func (c *Control) MarkAllAsTouched() {
	for _, n := range c.descendants() {
		n.mu.Lock()
		n.touched = true
		n.mu.Unlock()
		n.publish()
	}
	c.setFlags(func(c *Control) { c.touched = true })
}

func (c *Control) setFlags(fn func(*Control)) {
	c.mu.Lock()
	fn(c)
	c.mu.Unlock()
	c.refresh()
}

// descendants returns c's descendants, deepest first.
func (c *Control) descendants() []*Control {
	var out []*Control
	for _, child := range c.Children() {
		out = append(out, child.descendants()...)
		out = append(out, child)
	}
	return out
}

// Reset restores a leaf to v, or a group to an error-free state, clearing
// interaction flags and cancelling validation in flight. Group children are
// not reset.
func (c *Control) Reset(v any) {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	if !c.group {
		c.value = v
		c.initial = v
	}
	c.buffered = nil
	c.hasPending = false
	c.touched = false
	c.dirty = false
	c.errors = nil
	c.gen++
	c.validating = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	idle := c.idle
	c.mu.Unlock()

	c.refresh()
	c.release(idle)
}

// Initial returns the value the leaf was created or last reset with.
func (c *Control) Initial() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initial
}

// Disable excludes the control from validation and sets StatusDisabled.
func (c *Control) Disable() {
	c.mu.Lock()
	c.disabled = true
	c.gen++
	c.validating = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	idle := c.idle
	c.mu.Unlock()

	c.refresh()
	c.release(idle)
}

// Enable re-enables the control and revalidates it.
func (c *Control) Enable() {
	c.mu.Lock()
	c.disabled = false
	c.mu.Unlock()

	c.Validate(context.Background())
}

// SetErrors replaces the control's errors without running its validator.
func (c *Control) SetErrors(errs Errors) {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return
	}
	c.errors = errs.Clone()
	c.mu.Unlock()

	c.refresh()
}

// Generation returns the control's run counter and whether a validation is
// in flight. The counter advances whenever a validation starts or the
// control is reset or disabled.
func (c *Control) Generation() (gen uint64, validating bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen, c.validating
}

// SetErrorsAt replaces the control's errors if gen is still its generation
// and no validation is in flight. It reports whether errs were applied.
func (c *Control) SetErrorsAt(gen uint64, errs Errors) bool {
	c.mu.Lock()
	if c.detached || c.disabled || c.validating || gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.errors = errs.Clone()
	c.mu.Unlock()

	c.refresh()
	return true
}
