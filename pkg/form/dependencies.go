package form

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/statemachine"
	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

type phase string

type phaseEvent string

const (
	phaseIdle      phase = "idle"
	phaseScheduled phase = "scheduled"
	phaseRunning   phase = "running"
	// phaseRerun is running with another change queued behind it.
	phaseRerun phase = "rerun"

	eventSchedule phaseEvent = "schedule"
	eventStart    phaseEvent = "start"
	eventFinish   phaseEvent = "finish"
)

// trigger revalidates the dependents of one field after its value settles.
type trigger struct {
	path       string
	dependents []string
	machine    *statemachine.Machine[phase, phaseEvent]

	mu    sync.Mutex
	timer *time.Timer
}

func (t *trigger) arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(d, fn)
}

func (t *trigger) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// buildTriggers creates one trigger per field that has dependents. With
// bidirectional set every edge is mirrored.
func (f *Form[T]) buildTriggers(deps map[string][]string, bidirectional bool) map[string]*trigger {
	edges := make(map[string][]string)
	add := func(rawFrom, rawTo string) {
		from, okFrom := valuepath.Normalize(rawFrom)
		to, okTo := valuepath.Normalize(rawTo)
		if !okFrom || !okTo || from == to {
			f.log.Warn("dependency ignored", logger.Field(rawFrom), slog.String("dependent", rawTo))
			return
		}
		for _, existing := range edges[from] {
			if existing == to {
				return
			}
		}
		edges[from] = append(edges[from], to)
	}

	triggersInOrder := make([]string, 0, len(deps))
	for trigger := range deps {
		triggersInOrder = append(triggersInOrder, trigger)
	}
	sort.Strings(triggersInOrder)
	for _, from := range triggersInOrder {
		for _, to := range deps[from] {
			add(from, to)
			if bidirectional {
				add(to, from)
			}
		}
	}

	out := make(map[string]*trigger, len(edges))
	for path, dependents := range edges {
		out[path] = f.newTrigger(path, dependents)
	}
	return out
}

func (f *Form[T]) newTrigger(path string, dependents []string) *trigger {
	t := &trigger{path: path, dependents: dependents}

	arm := func(context.Context, phase, phase, phaseEvent) error {
		t.arm(f.currentDebounce(), func() { f.runTrigger(t) })
		return nil
	}
	withArm := statemachine.WithAction[phase, phaseEvent](arm)

	t.machine = statemachine.MustNew(phaseIdle,
		statemachine.WithTransition(phaseIdle, phaseScheduled, eventSchedule, withArm),
		statemachine.WithTransition(phaseScheduled, phaseScheduled, eventSchedule, withArm),
		statemachine.WithTransition[phase, phaseEvent](phaseScheduled, phaseRunning, eventStart),
		statemachine.WithTransition[phase, phaseEvent](phaseRunning, phaseRerun, eventSchedule),
		statemachine.WithTransition[phase, phaseEvent](phaseRerun, phaseRerun, eventSchedule),
		statemachine.WithTransition[phase, phaseEvent](phaseRunning, phaseIdle, eventFinish),
		statemachine.WithTransition(phaseRerun, phaseScheduled, eventFinish, withArm),
		statemachine.OnTransition(func(from, to phase, _ phaseEvent) {
			if from != to {
				f.recompute()
			}
		}),
	)
	return t
}

func (f *Form[T]) currentDebounce() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.debounce
}

// fireTrigger schedules dependency revalidation after path changed value.
func (f *Form[T]) fireTrigger(path string) {
	t, ok := f.triggers[path]
	if !ok {
		return
	}
	if f.isInFlight(path) {
		f.log.Debug("dependency revalidation skipped", logger.Field(path), logger.Event("reentrant"))
		return
	}
	_ = t.machine.Fire(f.ctx, eventSchedule)
}

// runTrigger waits for the trigger field to settle and revalidates its
// dependents. A stale timer that finds the machine not scheduled does
// nothing.
func (f *Form[T]) runTrigger(t *trigger) {
	if err := t.machine.Fire(f.ctx, eventStart); err != nil {
		return
	}
	defer func() { _ = t.machine.Fire(f.ctx, eventFinish) }()

	if !f.enterInFlight(t.path) {
		f.log.Debug("dependency revalidation skipped", logger.Field(t.path), logger.Event("reentrant"))
		return
	}
	defer f.leaveInFlight(t.path)

	if c := f.root.Find(t.path); c != nil {
		if err := c.Settled(f.ctx); err != nil {
			return
		}
	}

	for _, dep := range t.dependents {
		f.revalidateDependent(t.path, dep)
	}
}

func (f *Form[T]) revalidateDependent(trigger, dep string) {
	if !f.enterInFlight(dep) {
		f.log.Debug("dependency revalidation skipped",
			logger.Field(dep),
			logger.Event("reentrant"),
			slog.String("trigger", trigger),
		)
		return
	}
	defer f.leaveInFlight(dep)

	c := f.root.Find(dep)
	if c == nil || c.Detached() {
		return
	}
	_, _ = c.Validate(immediate(f.ctx)).AwaitContext(f.ctx)
}

func (f *Form[T]) enterInFlight(path string) bool {
	f.inflightMu.Lock()
	defer f.inflightMu.Unlock()
	if _, busy := f.inflight[path]; busy {
		return false
	}
	f.inflight[path] = struct{}{}
	return true
}

func (f *Form[T]) leaveInFlight(path string) {
	f.inflightMu.Lock()
	defer f.inflightMu.Unlock()
	delete(f.inflight, path)
}

func (f *Form[T]) isInFlight(path string) bool {
	f.inflightMu.Lock()
	defer f.inflightMu.Unlock()
	_, busy := f.inflight[path]
	return busy
}

func (f *Form[T]) triggersBusy() bool {
	for _, t := range f.triggers {
		if !t.machine.Is(phaseIdle) {
			return true
		}
	}
	return false
}

// resetTriggers stops pending timers and returns every trigger to idle.
func (f *Form[T]) resetTriggers() {
	for _, t := range f.triggers {
		t.stop()
		t.machine.Reset()
	}
}
