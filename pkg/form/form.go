package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/fieldstate"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/signal"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// Form binds a model of type T to a control tree and a validation suite.
type Form[T any] struct {
	id   uuid.UUID
	opts options
	log  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	root *control.Control

	// structureMu serializes Register, Unregister and Close.
	structureMu sync.Mutex

	mu             sync.RWMutex
	suite          suite.Suite[T]
	debounce       time.Duration
	cacheGen       uint64
	validators     map[string]control.AsyncValidator
	leaves         map[string]*leaf
	order          []string
	model          map[string]any
	submitted      bool
	internalErrors map[string]string
	fields         map[string]*fieldstate.Field
	policies       map[policyKey]*display.Policy
	closed         bool

	triggers   map[string]*trigger
	inflightMu sync.Mutex
	inflight   map[string]struct{}

	value       *signal.Signal[T]
	state       *signal.Signal[FormState[T]]
	recomputeMu sync.Mutex
	stopRoot    func()
}

type policyKey struct {
	path string
	mode display.Mode
}

type leaf struct {
	control *control.Control
	stop    func()
}

// New creates a form holding initial and validated by s. T must encode to a
// JSON object, or be a map[string]any.
func New[T any](initial T, s suite.Suite[T], opts ...Option) (*Form[T], error) {
	if s == nil {
		return nil, ErrNilSuite
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	model, err := encode(initial)
	if err != nil {
		return nil, err
	}
	value, err := decode[T](model)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &Form[T]{
		id:             o.id,
		opts:           o,
		log:            o.log.With(logger.Component("form"), logger.FormID(o.id)),
		ctx:            ctx,
		cancel:         cancel,
		suite:          s,
		debounce:       o.debounce,
		validators:     make(map[string]control.AsyncValidator),
		leaves:         make(map[string]*leaf),
		model:          model,
		fields:         make(map[string]*fieldstate.Field),
		policies:       make(map[policyKey]*display.Policy),
		inflight:       make(map[string]struct{}),
		internalErrors: make(map[string]string),
		value:          signal.New(value),
	}
	f.root = control.NewGroup("", control.WithValidator(f.rootValidator))
	f.triggers = f.buildTriggers(o.dependencies, o.bidirectional)
	f.state = signal.New(ComputeState(f.snapshot()))
	f.stopRoot = f.root.Changes().Watch(func(control.State) { f.recompute() })

	f.root.Validate(immediate(f.ctx))
	return f, nil
}

// ID returns the form instance ID.
func (f *Form[T]) ID() uuid.UUID {
	return f.id
}

// Root returns the root control group.
func (f *Form[T]) Root() *control.Control {
	return f.root
}

// Find returns the control registered at path, or nil.
func (f *Form[T]) Find(path string) *control.Control {
	p, ok := normalize(path)
	if !ok {
		return nil
	}
	return f.root.Find(p)
}

// Value returns the current model.
func (f *Form[T]) Value() T {
	return f.value.Get()
}

// ValueSignal exposes the model as a signal.
func (f *Form[T]) ValueSignal() *signal.Signal[T] {
	return f.value
}

// OnValueChange registers fn to run after every model change. fn must not
// mutate the form synchronously.
func (f *Form[T]) OnValueChange(fn func(T)) (stop func()) {
	return f.value.Watch(fn)
}

// State returns the latest form state.
func (f *Form[T]) State() FormState[T] {
	return f.state.Get()
}

// StateSignal exposes the form state as a signal. Watchers must not mutate
// the form synchronously.
func (f *Form[T]) StateSignal() *signal.Signal[FormState[T]] {
	return f.state
}

// Submitted reports whether Submit was called since creation or the last
// Reset.
func (f *Form[T]) Submitted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitted
}

// Field returns the state adapter bound to path. Adapters are cached per
// path and follow the field across Unregister and Register.
func (f *Form[T]) Field(path string) *fieldstate.Field {
	p, ok := normalize(path)
	if !ok {
		p = path
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if fs, ok := f.fields[p]; ok {
		return fs
	}
	fs := fieldstate.New(p, f.root, fieldstate.WithLogger(f.log))
	f.fields[p] = fs
	return fs
}

// Close cancels pending dependency revalidation and releases signals and
// field adapters. The form must not be used afterwards.
func (f *Form[T]) Close() error {
	f.structureMu.Lock()
	defer f.structureMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	leaves := f.leaves
	fields := f.fields
	f.leaves = make(map[string]*leaf)
	f.fields = make(map[string]*fieldstate.Field)
	f.policies = make(map[policyKey]*display.Policy)
	f.mu.Unlock()

	f.cancel()
	for _, t := range f.triggers {
		t.stop()
	}
	f.stopRoot()
	for _, l := range leaves {
		l.stop()
	}
	for _, fs := range fields {
		_ = fs.Close()
	}
	_ = f.value.Close()
	_ = f.state.Close()

	f.log.Debug("form closed")
	return nil
}

func (f *Form[T]) isClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

type immediateKey struct{}

// immediate marks ctx so validators skip the debounce window.
func immediate(ctx context.Context) context.Context {
	return context.WithValue(ctx, immediateKey{}, true)
}

func isImmediate(ctx context.Context) bool {
	v, _ := ctx.Value(immediateKey{}).(bool)
	return v
}
