package form

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// validatorFor returns the cached validator of path, building it on first
// use against the current suite and debounce.
func (f *Form[T]) validatorFor(path string) control.AsyncValidator {
	f.mu.Lock()
	defer f.mu.Unlock()

	if v, ok := f.validators[path]; ok {
		return v
	}
	v := f.buildValidator(path, f.cacheGen, f.suite, f.debounce)
	f.validators[path] = v
	return v
}

func (f *Form[T]) buildValidator(path string, gen uint64, s suite.Suite[T], debounce time.Duration) control.AsyncValidator {
	return func(ctx context.Context, c *control.Control) *async.Future[control.Errors] {
		return async.Async(ctx, c, func(ctx context.Context, c *control.Control) (control.Errors, error) {
			if err := wait(ctx, debounce); err != nil {
				return nil, err
			}

			// the suite or options were swapped while this run waited
			if !f.isCurrent(gen) {
				f.log.Debug("stale validator replaced", logger.Field(path))
				return f.validatorFor(path)(immediate(ctx), c).AwaitContext(ctx)
			}

			peers := f.idlePeers(path)
			res, runErr := suite.SafeRun(ctx, s, f.value.Get(), path).AwaitContext(ctx)
			errs, err := f.toErrors(ctx, c, path, res, runErr)
			if err == nil && res != nil {
				f.applyIncluded(path, peers, res, runErr)
			}
			return errs, err
		})
	}
}

type peer struct {
	control *control.Control
	gen     uint64
}

// idlePeers snapshots the registered fields other than path that have no
// validation in flight.
func (f *Form[T]) idlePeers(path string) map[string]peer {
	f.mu.RLock()
	controls := make(map[string]*control.Control, len(f.leaves))
	for p, l := range f.leaves {
		if p != path {
			controls[p] = l.control
		}
	}
	f.mu.RUnlock()

	peers := make(map[string]peer, len(controls))
	for p, c := range controls {
		if gen, validating := c.Generation(); !validating {
			peers[p] = peer{control: c, gen: gen}
		}
	}
	return peers
}

// applyIncluded writes the messages of the fields a run for path also
// tested onto their controls. A field that started its own run or was reset
// since the snapshot keeps its errors.
func (f *Form[T]) applyIncluded(path string, peers map[string]peer, res *suite.Result, runErr error) {
	rejected := suite.Rejections(runErr)
	if runErr != nil && len(rejected) == 0 {
		return
	}
	for _, p := range res.Tested() {
		pr, ok := peers[p]
		if !ok {
			continue
		}
		errs := control.NewErrors(append(res.ErrorsFor(p), rejected[p]...), res.WarningsFor(p))
		if pr.control.SetErrorsAt(pr.gen, errs) {
			f.log.Debug("included field updated", logger.Field(p), slog.String("trigger", path))
		}
	}
}

// rootValidator runs the rules registered under suite.RootKey and reports
// them as the root group's errors.
func (f *Form[T]) rootValidator(ctx context.Context, c *control.Control) *async.Future[control.Errors] {
	f.mu.RLock()
	s, debounce := f.suite, f.debounce
	f.mu.RUnlock()

	return async.Async(ctx, s, func(ctx context.Context, s suite.Suite[T]) (control.Errors, error) {
		if err := wait(ctx, debounce); err != nil {
			return nil, err
		}

		res, err := suite.SafeRun(ctx, s, f.value.Get(), suite.RootKey).AwaitContext(ctx)
		return f.toErrors(ctx, c, suite.RootKey, res, err)
	})
}

// toErrors maps a suite outcome onto the errors object of c, which is bound
// to field. A panicking suite records an internal error for field and leaves
// c's errors as they were; any run that does not panic clears it. A rejected async test of field becomes an error
// message; rejections of other fields are ignored. Any other failure is
// reported as the field's only error.
func (f *Form[T]) toErrors(ctx context.Context, c *control.Control, field string, res *suite.Result, err error) (control.Errors, error) {
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var pe *suite.PanicError
	if errors.As(err, &pe) {
		f.log.Error("validation suite panicked", logger.Field(field), logger.Error(err))
		f.setInternalError(field, pe.Error())
		return c.Errors(), nil
	}
	f.setInternalError(field, "")

	if err == nil {
		return control.NewErrors(res.ErrorsFor(field), res.WarningsFor(field)), nil
	}

	rejected := suite.Rejections(err)
	if len(rejected) == 0 {
		f.log.Warn("validation suite failed", logger.Field(field), logger.Error(err))
		return control.NewErrors([]string{err.Error()}, nil), nil
	}

	msgs := rejected[field]
	if len(msgs) > 0 {
		f.log.Warn("async validation rejected", logger.Field(field), logger.Error(err))
	}
	return control.NewErrors(append(res.ErrorsFor(field), msgs...), res.WarningsFor(field)), nil
}

func (f *Form[T]) isCurrent(gen uint64) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cacheGen == gen
}

// setInternalError records the suite failure of field; an empty msg clears
// it.
func (f *Form[T]) setInternalError(field, msg string) {
	f.mu.Lock()
	changed := f.internalErrors[field] != msg
	if msg == "" {
		delete(f.internalErrors, field)
	} else {
		f.internalErrors[field] = msg
	}
	f.mu.Unlock()

	if changed {
		f.recompute()
	}
}

// wait blocks for the debounce window unless ctx asks for an immediate run.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 || isImmediate(ctx) {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
