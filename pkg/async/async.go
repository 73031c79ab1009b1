package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the result of a computation that may still be running.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// complete stores the outcome exactly once and releases waiters.
func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future completes and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the future completes or ctx is done, whichever
// comes first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits at most timeout for the future to complete.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// Done returns a channel closed when the future completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the future has completed without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Resolved returns an already completed future.
func Resolved[U any](res U, err error) *Future[U] {
	f := newFuture[U]()
	f.complete(res, err)
	return f
}

// Async runs fn in its own goroutine and returns a Future for its result.
// A panic in fn completes the future with a *PanicError.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		var zero U
		defer func() {
			if r := recover(); r != nil {
				f.complete(zero, &PanicError{Value: r})
			}
		}()

		// pre-cancelled contexts never run fn
		select {
		case <-ctx.Done():
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order. The
// first error encountered in slice order is returned alongside the results
// collected so far.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
