package availability

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures a MemoryChecker.
type MemoryOption func(*MemoryChecker)

// WithLatency delays every lookup by d, honoring context cancellation.
func WithLatency(d time.Duration) MemoryOption {
	return func(m *MemoryChecker) {
		if d > 0 {
			m.latency = d
		}
	}
}

// WithTaken seeds the checker with reserved values.
func WithTaken(values ...string) MemoryOption {
	return func(m *MemoryChecker) {
		for _, v := range values {
			m.taken[Normalize(v)] = struct{}{}
		}
	}
}

// MemoryChecker is an in-process Checker backed by a set.
type MemoryChecker struct {
	mu      sync.RWMutex
	taken   map[string]struct{}
	latency time.Duration
}

// NewMemoryChecker creates an empty in-memory checker.
func NewMemoryChecker(opts ...MemoryOption) *MemoryChecker {
	m := &MemoryChecker{taken: make(map[string]struct{})}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsTaken reports whether value was reserved.
func (m *MemoryChecker) IsTaken(ctx context.Context, value string) (bool, error) {
	if m.latency > 0 {
		t := time.NewTimer(m.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-t.C:
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.taken[Normalize(value)]
	return ok, nil
}

// Reserve marks value as taken.
func (m *MemoryChecker) Reserve(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taken[Normalize(value)] = struct{}{}
	return nil
}

// Release frees value.
func (m *MemoryChecker) Release(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.taken, Normalize(value))
	return nil
}
