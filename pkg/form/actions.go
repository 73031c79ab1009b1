package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/suite"
	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

func (f *Form[T]) leafControl(path string) (*control.Control, error) {
	if f.isClosed() {
		return nil, ErrClosed
	}
	p, ok := normalize(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	f.mu.RLock()
	l, ok := f.leaves[p]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, p)
	}
	return l.control, nil
}

// Input records user input for path. The value is committed according to
// the control's update timing and marks the field dirty once committed.
func (f *Form[T]) Input(path string, v any) error {
	c, err := f.leafControl(path)
	if err != nil {
		return err
	}
	c.Input(v)
	return nil
}

// SetFieldValue writes v to path programmatically. The field stays
// pristine.
func (f *Form[T]) SetFieldValue(path string, v any) error {
	c, err := f.leafControl(path)
	if err != nil {
		return err
	}
	c.SetValue(v)
	return nil
}

// Blur marks path touched and commits input buffered until blur.
func (f *Form[T]) Blur(path string) error {
	c, err := f.leafControl(path)
	if err != nil {
		return err
	}
	c.Blur()
	return nil
}

// SetValue replaces the whole model. Registered fields take their new
// values without being marked dirty.
func (f *Form[T]) SetValue(v T) error {
	if f.isClosed() {
		return ErrClosed
	}
	model, err := encode(v)
	if err != nil {
		return err
	}
	value, err := decode[T](model)
	if err != nil {
		return err
	}

	f.mu.Lock()
	prev := f.model
	f.model = model
	paths := make([]string, len(f.order))
	copy(paths, f.order)
	leaves := make([]*control.Control, len(paths))
	for i, p := range paths {
		leaves[i] = f.leaves[p].control
	}
	f.mu.Unlock()

	// validators read the model through the value signal
	f.value.Set(value)

	var changed []string
	for i, p := range paths {
		next, _ := valuepath.Get(model, p)
		old, _ := valuepath.Get(prev, p)
		if reflect.DeepEqual(next, old) {
			continue
		}
		changed = append(changed, p)
		leaves[i].SetValue(valuepath.Clone(next))
	}

	f.modelChanged("")
	for _, p := range changed {
		f.fireTrigger(p)
	}
	return nil
}

// Validate revalidates every field and the root rules without debouncing
// and waits until the form settles or ctx is done.
func (f *Form[T]) Validate(ctx context.Context) (FormState[T], error) {
	if f.isClosed() {
		return f.State(), ErrClosed
	}
	run := immediate(ctx)
	for _, c := range f.root.Leaves() {
		c.Validate(run)
	}
	f.root.Validate(run)

	if err := f.root.Settled(ctx); err != nil {
		return f.State(), err
	}
	f.recompute()
	return f.State(), nil
}

// ValidateField revalidates path without debouncing and returns its settled
// state.
func (f *Form[T]) ValidateField(ctx context.Context, path string) (control.State, error) {
	c, err := f.leafControl(path)
	if err != nil {
		return control.State{}, err
	}
	if _, err := c.Validate(immediate(ctx)).AwaitContext(ctx); err != nil && !errors.Is(err, control.ErrSuperseded) {
		return c.State(), err
	}
	if err := c.Settled(ctx); err != nil {
		return c.State(), err
	}
	return c.State(), nil
}

// Submit commits input buffered by every field, marks all fields touched,
// flags the form as submitted and validates it.
func (f *Form[T]) Submit(ctx context.Context) (FormState[T], error) {
	if f.isClosed() {
		return f.State(), ErrClosed
	}
	for _, c := range f.root.Leaves() {
		c.Commit()
	}
	f.root.MarkAllAsTouched()

	f.mu.Lock()
	f.submitted = true
	f.mu.Unlock()
	f.log.Debug("form submitted", logger.Event("submit"))

	return f.Validate(ctx)
}

// Reset replaces the model with v and returns every field to pristine,
// untouched and error-free. The submitted flag is cleared.
func (f *Form[T]) Reset(v T) error {
	if f.isClosed() {
		return ErrClosed
	}
	model, err := encode(v)
	if err != nil {
		return err
	}
	value, err := decode[T](model)
	if err != nil {
		return err
	}

	f.resetTriggers()

	f.mu.Lock()
	f.model = model
	f.submitted = false
	clear(f.internalErrors)
	paths := make([]string, len(f.order))
	copy(paths, f.order)
	f.mu.Unlock()

	f.value.Set(value)
	for _, p := range paths {
		if c := f.root.Find(p); c != nil {
			next, _ := valuepath.Get(model, p)
			c.Reset(valuepath.Clone(next))
		}
	}
	f.root.Walk(func(c *control.Control) {
		if c.IsGroup() {
			c.Reset(nil)
		}
	})

	run := immediate(f.ctx)
	for _, c := range f.root.Leaves() {
		c.Validate(run)
	}
	f.root.Validate(run)
	f.recompute()
	return nil
}

// SetSuite swaps the validation suite. Cached validators are discarded and
// every field is revalidated against the new suite.
func (f *Form[T]) SetSuite(s suite.Suite[T]) error {
	if s == nil {
		return ErrNilSuite
	}
	f.mu.Lock()
	f.suite = s
	f.mu.Unlock()
	f.invalidate("suite")
	return nil
}

// SetDebounce changes the debounce window. Cached validators are discarded.
func (f *Form[T]) SetDebounce(d time.Duration) {
	if d < 0 {
		return
	}
	f.mu.Lock()
	f.debounce = d
	f.mu.Unlock()
	f.invalidate("debounce")
}

func (f *Form[T]) invalidate(reason string) {
	f.mu.Lock()
	f.cacheGen++
	clear(f.validators)
	f.mu.Unlock()

	f.log.Debug("validator cache invalidated", logger.Event(reason))
	if f.isClosed() {
		return
	}
	run := immediate(f.ctx)
	for _, c := range f.root.Leaves() {
		c.Validate(run)
	}
	f.root.Validate(run)
}

// Policy returns the error-display policy for path bound to the form's
// submitted flag. Policies are cached per path and mode, so the display
// configuration is checked once per policy and again when the field is
// registered. An empty or invalid mode uses the form's configured mode.
func (f *Form[T]) Policy(path string, mode display.Mode) *display.Policy {
	if !mode.Valid() {
		mode = f.opts.displayMode
	}
	p, ok := normalize(path)
	if !ok {
		p = path
	}
	field := f.Field(p)

	f.mu.Lock()
	defer f.mu.Unlock()
	key := policyKey{path: p, mode: mode}
	if pol, ok := f.policies[key]; ok {
		return pol
	}
	pol := display.NewPolicy(field, f.Submitted,
		display.WithMode(mode),
		display.WithLogger(f.log),
	)
	f.policies[key] = pol
	return pol
}

// checkPolicies re-checks the display configuration of path's cached
// policies against its newly registered control.
func (f *Form[T]) checkPolicies(path string) {
	f.mu.RLock()
	var pols []*display.Policy
	for key, pol := range f.policies {
		if key.path == path {
			pols = append(pols, pol)
		}
	}
	f.mu.RUnlock()

	for _, pol := range pols {
		pol.CheckConfig()
	}
}
