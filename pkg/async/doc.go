// Package async provides a small generic Future used to carry results that
// may be available immediately or only after background work finishes.
//
// Callers never need to know which case they are in: a Future built with
// Resolved is already complete, a Future built with Async completes when its
// goroutine returns. Both are consumed with the same Await, AwaitContext,
// AwaitWithTimeout, Done and IsComplete methods.
//
// # Usage
//
//	f := async.Async(ctx, "admin", func(ctx context.Context, name string) (bool, error) {
//	    return checker.IsTaken(ctx, name)
//	})
//	taken, err := f.AwaitContext(ctx)
//
// # Error Handling
//
// A panic inside the function passed to Async does not crash the process: it
// completes the Future with a *PanicError wrapping ErrPanic. A pre-cancelled
// context completes the Future with the context error without running the
// function. AwaitWithTimeout returns ErrTimeout when the deadline passes
// first; the underlying work keeps running and its result is dropped.
package async
