package signup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/availability"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/suite"
)

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithDependencies replaces DefaultDependencies.
func WithDependencies(deps map[string][]string) ServiceOption {
	return func(s *Service) {
		if deps != nil {
			s.deps = deps
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = logger.OrNop(l) }
}

// Service keeps live signup forms keyed by their form ID.
type Service struct {
	cfg     form.Config
	deps    map[string][]string
	checker availability.Checker
	suite   suite.Suite[Signup]
	log     *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*form.Form[Signup]
}

// NewService creates a service validating usernames against checker.
func NewService(checker availability.Checker, cfg form.Config, opts ...ServiceOption) *Service {
	s := &Service{
		cfg:      cfg,
		deps:     DefaultDependencies,
		checker:  checker,
		suite:    NewSuite(checker),
		log:      logger.Nop(),
		sessions: make(map[uuid.UUID]*form.Form[Signup]),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the form configuration new sessions are created with.
func (s *Service) Config() form.Config {
	return s.cfg
}

// Create starts a new form session with every default field registered.
func (s *Service) Create(ctx context.Context) (*form.Form[Signup], error) {
	f, err := form.NewFromConfig(Signup{}, s.suite, s.cfg,
		form.WithLogger(s.log),
		form.WithDependencies(s.deps),
	)
	if err != nil {
		return nil, err
	}
	for _, field := range Fields {
		if _, err := f.Register(field); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	s.mu.Lock()
	s.sessions[f.ID()] = f
	s.mu.Unlock()

	s.log.InfoContext(ctx, "signup form created", logger.FormID(f.ID()))
	return f, nil
}

// Get returns the form session id.
func (s *Service) Get(id uuid.UUID) (*form.Form[Signup], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return f, nil
}

// Input applies user input to field and, when blur is set, blurs it.
// Toggling seniorRole registers or unregisters the bio field.
func (s *Service) Input(ctx context.Context, id uuid.UUID, field string, value any, blur bool) (*form.Form[Signup], error) {
	f, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := coerce(field, value)
	if err != nil {
		return nil, err
	}
	if f.Find(field) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	if err := f.Input(field, v); err != nil {
		return nil, err
	}
	if blur {
		if err := f.Blur(field); err != nil {
			return nil, err
		}
	}

	if field == FieldSeniorRole {
		if err := s.syncBio(f, v.(bool)); err != nil {
			return nil, err
		}
	}
	s.log.DebugContext(ctx, "signup input", logger.FormID(id), logger.Field(field))
	return f, nil
}

func (s *Service) syncBio(f *form.Form[Signup], senior bool) error {
	registered := f.Find(FieldBio) != nil
	switch {
	case senior && !registered:
		_, err := f.Register(FieldBio)
		return err
	case !senior && registered:
		return f.Unregister(FieldBio)
	}
	return nil
}

// Submit submits the form and, when it is valid and the checker records
// reservations, reserves the username.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (form.FormState[Signup], error) {
	f, err := s.Get(id)
	if err != nil {
		return form.FormState[Signup]{}, err
	}
	st, err := f.Submit(ctx)
	if err != nil {
		return st, err
	}
	if err := Settle(ctx, f); err != nil {
		return f.State(), err
	}
	st = f.State()

	if reg, ok := s.checker.(availability.Registry); ok && st.Valid {
		if err := reg.Reserve(ctx, st.Value.Username); err != nil {
			s.log.ErrorContext(ctx, "username reservation failed", logger.FormID(id), logger.Error(err))
			return st, err
		}
		s.log.InfoContext(ctx, "signup accepted", logger.FormID(id))
	}
	return st, nil
}

// Delete closes and forgets the form session id.
func (s *Service) Delete(id uuid.UUID) error {
	s.mu.Lock()
	f, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return f.Close()
}

// Close closes every session.
func (s *Service) Close() error {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*form.Form[Signup])
	s.mu.Unlock()

	for _, f := range sessions {
		_ = f.Close()
	}
	return nil
}

// sanitizers normalize string input per field. Passwords are stored as
// typed.
var sanitizers = map[string]sanitizer.Func{
	FieldEmail:    sanitizer.NormalizeEmail,
	FieldUsername: sanitizer.Compose(sanitizer.NormalizeWhitespace, sanitizer.TrimToLower),
	FieldBio:      sanitizer.Compose(sanitizer.StripHTML, sanitizer.RemoveControlChars, sanitizer.Trim, sanitizer.MaxLength(500)),
}

// coerce checks that value has the JSON type field expects and sanitizes
// strings.
func coerce(field string, value any) (any, error) {
	switch field {
	case FieldSeniorRole:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidValue, field)
		}
		return b, nil
	case FieldEmail, FieldUsername, FieldPassword, FieldConfirmPassword, FieldBio:
		if value == nil {
			return "", nil
		}
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidValue, field)
		}
		return sanitizer.Apply(str, sanitizers[field]), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// Settle waits until f has no validation or dependency revalidation in
// flight.
func Settle(ctx context.Context, f *form.Form[Signup]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for {
		if err := f.Root().Settled(ctx); err != nil {
			return err
		}
		sub := f.StateSignal().Subscribe(ctx)
		if f.State().Idle {
			_ = sub.Close()
			return nil
		}
		var open bool
		select {
		case _, open = <-sub.Receive():
		case <-ctx.Done():
		}
		_ = sub.Close()
		if !open && ctx.Err() == nil {
			return form.ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}
