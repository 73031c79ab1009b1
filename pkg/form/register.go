package form

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

func normalize(path string) (string, bool) {
	return valuepath.Normalize(path)
}

// Register creates the control for path, creating intermediate groups as
// needed, binds it to the model value at path and validates it.
func (f *Form[T]) Register(path string, opts ...control.Option) (*control.Control, error) {
	p, ok := normalize(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	segs, err := valuepath.Split(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	f.structureMu.Lock()
	defer f.structureMu.Unlock()
	if f.isClosed() {
		return nil, ErrClosed
	}
	if f.root.Find(p) != nil {
		return nil, fmt.Errorf("%w: %s", ErrFieldExists, p)
	}

	parent := f.root
	for _, seg := range segs[:len(segs)-1] {
		next := parent.Child(seg)
		if next == nil {
			next = control.NewGroup(seg)
			if err := parent.Add(next); err != nil {
				return nil, err
			}
		}
		if !next.IsGroup() {
			return nil, fmt.Errorf("%w: %q is nested under field %q", ErrInvalidPath, p, next.Path())
		}
		parent = next
	}

	f.mu.RLock()
	initial, _ := valuepath.Get(f.model, p)
	f.mu.RUnlock()

	dispatch := func(ctx context.Context, c *control.Control) *async.Future[control.Errors] {
		return f.validatorFor(p)(ctx, c)
	}
	c := control.New(segs[len(segs)-1], valuepath.Clone(initial), append(opts, control.WithValidator(dispatch))...)
	stop := c.Changes().Watch(func(st control.State) { f.onLeafChange(p, st) })

	f.mu.Lock()
	f.leaves[p] = &leaf{control: c, stop: stop}
	f.order = append(f.order, p)
	fs := f.fields[p]
	f.mu.Unlock()

	if err := parent.Add(c); err != nil {
		f.forget(p)
		return nil, err
	}
	if fs != nil {
		fs.Sync()
		f.checkPolicies(p)
	}

	f.log.Debug("field registered", logger.Field(p))
	c.Validate(immediate(f.ctx))
	return c, nil
}

// Unregister removes the control at path. Its cached validator is evicted,
// any validation in flight for it is discarded and its value is removed from
// the model.
func (f *Form[T]) Unregister(path string) error {
	p, ok := normalize(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	f.structureMu.Lock()
	defer f.structureMu.Unlock()
	if f.isClosed() {
		return ErrClosed
	}

	f.mu.RLock()
	_, registered := f.leaves[p]
	f.mu.RUnlock()
	if !registered {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, p)
	}

	c := f.root.Find(p)
	f.forget(p)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, p)
	}
	if parent := c.Parent(); parent != nil {
		parent.Remove(c.Name())
	}

	f.mu.Lock()
	model, err := valuepath.Delete(f.model, p)
	if err == nil {
		f.model = model
	}
	fs := f.fields[p]
	f.mu.Unlock()

	if fs != nil {
		fs.Sync()
	}
	f.log.Debug("field unregistered", logger.Field(p))
	f.modelChanged(p)
	return nil
}

// forget drops the bookkeeping for p: its watcher, cached validator and
// registration order entry.
func (f *Form[T]) forget(p string) {
	f.mu.Lock()
	l := f.leaves[p]
	delete(f.leaves, p)
	delete(f.validators, p)
	delete(f.internalErrors, p)
	f.order = slices.DeleteFunc(f.order, func(s string) bool { return s == p })
	f.mu.Unlock()

	if l != nil {
		l.stop()
	}
}

// Paths returns the registered field paths in registration order.
func (f *Form[T]) Paths() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.order)
}

// onLeafChange runs on every state change of a registered control. A value
// that differs from the model is written back and revalidates the root.
func (f *Form[T]) onLeafChange(p string, st control.State) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	current, exists := valuepath.Get(f.model, p)
	changed := !exists || !reflect.DeepEqual(current, st.Value)
	if changed {
		model, err := valuepath.Set(f.model, p, valuepath.Clone(st.Value))
		if err != nil {
			f.mu.Unlock()
			f.log.Warn("model update failed", logger.Field(p), logger.Error(err))
			f.recompute()
			return
		}
		f.model = model
	}
	f.mu.Unlock()

	if changed {
		f.modelChanged(p)
		f.fireTrigger(p)
		return
	}
	f.recompute()
}

// modelChanged republishes the decoded model and revalidates root rules.
func (f *Form[T]) modelChanged(p string) {
	f.mu.RLock()
	model := f.model
	f.mu.RUnlock()

	value, err := decode[T](model)
	if err != nil {
		f.log.Warn("model does not decode", logger.Field(p), logger.Error(err))
	} else {
		f.value.Set(value)
	}
	f.root.Validate(f.ctx)
	f.recompute()
}
