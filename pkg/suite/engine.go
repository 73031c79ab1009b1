package suite

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// Mode controls how many tests run per field.
type Mode int

const (
	// ModeEager stops evaluating a field after its first failing test.
	ModeEager Mode = iota
	// ModeAll evaluates every test of every field in scope.
	ModeAll
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	mode Mode
}

// WithMode sets the evaluation mode.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// Definition registers the tests of a suite for one model.
type Definition[T any] func(s *Context, model T)

// Engine is a Suite built from a Definition.
type Engine[T any] struct {
	define Definition[T]
	opts   options
}

// New builds a Suite from define.
func New[T any](define Definition[T], opts ...Option) *Engine[T] {
	e := &Engine[T]{define: define}
	for _, opt := range opts {
		opt(&e.opts)
	}
	return e
}

// Run evaluates the definition against model. Synchronous tests run before
// Run returns; the returned future completes once every async test in scope
// has answered. A panic in the definition propagates to the caller.
func (e *Engine[T]) Run(ctx context.Context, model T, field string) *async.Future[*Result] {
	if e == nil || e.define == nil {
		return async.Resolved[*Result](nil, ErrNilSuite)
	}

	c := &Context{
		ctx:      ctx,
		target:   field,
		mode:     e.opts.mode,
		result:   NewResult(),
		includes: make(map[string][]string),
	}
	e.define(c, model)

	if len(c.pending) == 0 {
		return async.Resolved(c.result, nil)
	}

	pending := c.pending
	result := c.result
	mode := c.mode
	return async.Async(ctx, pending, func(ctx context.Context, tests []asyncTest) (*Result, error) {
		futures := make([]*async.Future[bool], len(tests))
		for i, t := range tests {
			futures[i] = async.Async(ctx, t, func(ctx context.Context, t asyncTest) (bool, error) {
				return t.check(ctx)
			})
		}

		var errs []error
		for i, f := range futures {
			t := tests[i]
			ok, err := f.Await()
			if err != nil {
				errs = append(errs, &AsyncTestError{Field: t.field, Err: err})
				continue
			}
			if ok {
				continue
			}
			if t.warn {
				result.AddWarning(t.field, t.message)
				continue
			}
			if mode == ModeEager && result.HasErrors(t.field) {
				continue
			}
			result.AddError(t.field, t.message)
		}
		return result, errors.Join(errs...)
	})
}

type asyncTest struct {
	field   string
	message string
	warn    bool
	check   func(ctx context.Context) (bool, error)
}

// Context collects the tests of one suite run.
type Context struct {
	ctx      context.Context
	target   string
	mode     Mode
	result   *Result
	includes map[string][]string
	pending  []asyncTest
	skipping int
}

// Field returns the field the run is narrowed to, or "" for a full run.
func (c *Context) Field() string {
	return c.target
}

// Context returns the run's context.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Inclusion links a field's tests to runs targeting other fields.
type Inclusion struct {
	c     *Context
	field string
}

// Include starts an inclusion rule for field. Inclusions must be declared
// before the tests they affect.
func (c *Context) Include(field string) *Inclusion {
	return &Inclusion{c: c, field: field}
}

// When runs the included field's tests whenever the run targets one of
// triggers.
func (i *Inclusion) When(triggers ...string) {
	i.c.includes[i.field] = append(i.c.includes[i.field], triggers...)
}

// Always runs the included field's tests on every run.
func (i *Inclusion) Always() {
	i.c.includes[i.field] = append(i.c.includes[i.field], "*")
}

// InScope reports whether tests for field run in this invocation.
func (c *Context) InScope(field string) bool {
	if c.target == "" || c.target == field {
		return true
	}
	triggers := c.includes[field]
	return slices.Contains(triggers, c.target) || slices.Contains(triggers, "*")
}

// HasErrors reports whether field already failed a test in this run.
func (c *Context) HasErrors(field string) bool {
	return c.result.HasErrors(field)
}

// SkipWhen ignores every test registered inside fn when skip is true.
func (c *Context) SkipWhen(skip bool, fn func()) {
	if skip {
		c.skipping++
		defer func() { c.skipping-- }()
	}
	fn()
}

func (c *Context) runs(field string, warn bool) bool {
	if c.skipping > 0 || !c.InScope(field) {
		return false
	}
	c.result.MarkTested(field)
	if !warn && c.mode == ModeEager && c.result.HasErrors(field) {
		return false
	}
	return true
}

// Test registers an error-severity test. check returning false records
// message for field.
func (c *Context) Test(field, message string, check func() bool) {
	if !c.runs(field, false) {
		return
	}
	if !check() {
		c.result.AddError(field, message)
	}
}

// Warn registers a warning-severity test. Warnings never affect validity.
func (c *Context) Warn(field, message string, check func() bool) {
	if !c.runs(field, true) {
		return
	}
	if !check() {
		c.result.AddWarning(field, message)
	}
}

// TestAsync registers an error-severity test answered in the background.
// check receives the run's context and may honor its cancellation.
func (c *Context) TestAsync(field, message string, check func(ctx context.Context) (bool, error)) {
	if !c.runs(field, false) {
		return
	}
	c.pending = append(c.pending, asyncTest{field: field, message: message, check: check})
}

// WarnAsync registers a warning-severity test answered in the background.
func (c *Context) WarnAsync(field, message string, check func(ctx context.Context) (bool, error)) {
	if !c.runs(field, true) {
		return
	}
	c.pending = append(c.pending, asyncTest{field: field, message: message, warn: true, check: check})
}

// Apply registers prebuilt rules in order.
func (c *Context) Apply(rules ...Rule) {
	for _, r := range rules {
		if r.Warning {
			c.Warn(r.Field, r.Message, r.Check)
			continue
		}
		c.Test(r.Field, r.Message, r.Check)
	}
}
