package suite

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/async"
)

// Suite evaluates validation tests against a model. An empty field runs every
// test; a non-empty field narrows evaluation to that field and the tests
// included for it.
type Suite[T any] interface {
	Run(ctx context.Context, model T, field string) *async.Future[*Result]
}

// Func adapts a synchronous function into a Suite.
type Func[T any] func(model T, field string) *Result

// Run calls fn on the caller's goroutine, so a panic in fn surfaces to the
// caller synchronously.
func (fn Func[T]) Run(_ context.Context, model T, field string) *async.Future[*Result] {
	if fn == nil {
		return async.Resolved[*Result](nil, ErrNilSuite)
	}
	return async.Resolved(fn(model, field), nil)
}

// AsyncFunc adapts a blocking function into a Suite by running it in the
// background.
type AsyncFunc[T any] func(ctx context.Context, model T, field string) (*Result, error)

// Run starts fn in its own goroutine.
func (fn AsyncFunc[T]) Run(ctx context.Context, model T, field string) *async.Future[*Result] {
	if fn == nil {
		return async.Resolved[*Result](nil, ErrNilSuite)
	}
	return async.Async(ctx, model, func(ctx context.Context, m T) (*Result, error) {
		return fn(ctx, m, field)
	})
}

// SafeRun invokes s and converts a panic raised during the call into a
// future rejected with *PanicError. Panics inside asynchronous work are
// reported by that work's future instead.
func SafeRun[T any](ctx context.Context, s Suite[T], model T, field string) (f *async.Future[*Result]) {
	if s == nil {
		return async.Resolved[*Result](nil, ErrNilSuite)
	}
	defer func() {
		if r := recover(); r != nil {
			f = async.Resolved[*Result](nil, &PanicError{Field: field, Value: r})
		}
	}()
	f = s.Run(ctx, model, field)
	if f == nil {
		f = async.Resolved[*Result](nil, nil)
	}
	return f
}
