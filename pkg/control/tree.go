package control

import (
	"fmt"
	"strings"
)

// Add attaches child to the group c.
func (c *Control) Add(child *Control) error {
	if !c.group {
		return ErrNotGroup
	}
	if child == nil || child.name == "" || strings.Contains(child.name, ".") {
		return ErrInvalidName
	}

	if child.Detached() {
		return ErrDetached
	}

	c.mu.Lock()
	if _, exists := c.children[child.name]; exists {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateControl, child.name)
	}
	c.children[child.name] = child
	c.order = append(c.order, child.name)
	child.attach(c, c.path)
	c.mu.Unlock()

	c.refresh()
	return nil
}

// attach is called with the new parent's lock held.
func (c *Control) attach(parent *Control, parentPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if parent != nil {
		c.parent = parent
	}
	c.path = c.name
	if parentPath != "" {
		c.path = parentPath + "." + c.name
	}
	for _, name := range c.order {
		c.children[name].attach(nil, c.path)
	}
}

// Remove detaches the named child from the group and returns it. A removed
// control discards any validation result still in flight and closes its
// state signal.
func (c *Control) Remove(name string) (*Control, bool) {
	if !c.group {
		return nil, false
	}

	c.mu.Lock()
	child, ok := c.children[name]
	if !ok {
		c.mu.Unlock()
		return nil, false
	}
	delete(c.children, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i:i], c.order[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	child.detach()
	c.refresh()
	return child, true
}

func (c *Control) detach() {
	c.mu.Lock()
	c.detached = true
	c.parent = nil
	c.validating = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.markIdleLocked()
	children := c.childrenLocked()
	c.mu.Unlock()

	for _, child := range children {
		child.detach()
	}
	_ = c.state.Close()
}

// Child returns the direct child called name.
func (c *Control) Child(name string) *Control {
	if !c.group {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.children[name]
}

// Find resolves a dot-separated path relative to c.
func (c *Control) Find(path string) *Control {
	if path == "" {
		return c
	}
	current := c
	for seg := range strings.SplitSeq(path, ".") {
		current = current.Child(seg)
		if current == nil {
			return nil
		}
	}
	return current
}

// Children returns the direct children in insertion order.
func (c *Control) Children() []*Control {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.childrenLocked()
}

func (c *Control) childrenLocked() []*Control {
	out := make([]*Control, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.children[name])
	}
	return out
}

// Walk visits c and its descendants depth-first in insertion order.
func (c *Control) Walk(fn func(*Control)) {
	fn(c)
	for _, child := range c.Children() {
		child.Walk(fn)
	}
}

// Leaves returns every non-group descendant in insertion order.
func (c *Control) Leaves() []*Control {
	var out []*Control
	c.Walk(func(n *Control) {
		if !n.group {
			out = append(out, n)
		}
	})
	return out
}
