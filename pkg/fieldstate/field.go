package fieldstate

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/signal"
	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

// Resolver finds the control currently bound to a path. A *control.Control
// group satisfies it.
type Resolver interface {
	Find(path string) *control.Control
}

// Option configures a Field.
type Option func(*Field)

// WithLogger sets the logger used for re-binding diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(f *Field) { f.log = logger.OrNop(l) }
}

// Field is the read model of one control, re-resolved by path so it
// survives the control being replaced.
type Field struct {
	path     string
	resolver Resolver
	log      *slog.Logger

	mu      sync.Mutex
	current *control.Control
	stop    func()
	touched bool
	dirty   bool
	closed  bool

	publishMu sync.Mutex
	state     *signal.Signal[control.State]
}

// New binds a Field to path and resolves its control immediately.
func New(path string, resolver Resolver, opts ...Option) *Field {
	f := &Field{
		path:     path,
		resolver: resolver,
		log:      logger.Nop(),
		state:    signal.New(absentState(path)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Sync()
	return f
}

func absentState(path string) control.State {
	name := path
	if segs, err := valuepath.Split(path); err == nil && len(segs) > 0 {
		name = segs[len(segs)-1]
	}
	return control.State{Name: name, Path: path}
}

// Path returns the path the field is bound to.
func (f *Field) Path() string {
	return f.path
}

// Control returns the currently bound control, or nil.
func (f *Field) Control() *control.Control {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Changes exposes the merged state signal.
func (f *Field) Changes() *signal.Signal[control.State] {
	return f.state
}

// Sync re-resolves the control. When the bound control changed, the field
// re-subscribes and publishes the new control's state. Otherwise it
// publishes only when touched or dirty differ from the last published
// state. It reports whether a new state was published.
func (f *Field) Sync() bool {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return false
	}

	next := f.resolver.Find(f.path)
	if next != nil && next.Detached() {
		next = nil
	}

	switch {
	case next != f.current:
		if f.stop != nil {
			f.stop()
			f.stop = nil
		}
		f.current = next
		if next != nil {
			f.stop = next.Changes().Watch(func(s control.State) { f.observe(next, s) })
		}
		f.log.Debug("field rebound",
			logger.Component("fieldstate"),
			logger.Field(f.path),
			slog.Bool("bound", next != nil),
		)
	case next == nil:
		f.mu.Unlock()
		return false
	default:
		st := next.State()
		if st.Touched == f.touched && st.Dirty == f.dirty {
			f.mu.Unlock()
			return false
		}
	}
	f.mu.Unlock()

	f.publishCurrent(next)
	return true
}

func (f *Field) observe(c *control.Control, st control.State) {
	f.mu.Lock()
	if f.closed || f.current != c {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	f.publishMu.Lock()
	defer f.publishMu.Unlock()
	f.setLocked(st)
}

// publishCurrent reads c's state while holding publishMu so that a change
// observed concurrently is never overwritten by an older snapshot.
func (f *Field) publishCurrent(c *control.Control) {
	f.publishMu.Lock()
	defer f.publishMu.Unlock()

	st := absentState(f.path)
	if c != nil {
		st = c.State()
	}
	f.setLocked(st)
}

func (f *Field) setLocked(st control.State) {
	f.mu.Lock()
	f.touched, f.dirty = st.Touched, st.Dirty
	f.mu.Unlock()
	f.state.Set(st)
}

// Close stops tracking the control and closes the state signal.
func (f *Field) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	if f.stop != nil {
		f.stop()
		f.stop = nil
	}
	f.current = nil
	f.mu.Unlock()

	return f.state.Close()
}
