package signal

import (
	"context"
	"reflect"
	"sync"
)

// Option configures a Signal.
type Option[T any] func(*Signal[T])

// WithEqual replaces the equality used to suppress redundant notifications.
func WithEqual[T any](equal func(a, b T) bool) Option[T] {
	return func(s *Signal[T]) {
		if equal != nil {
			s.equal = equal
		}
	}
}

// WithBufferSize sets the channel buffer of new subscribers. A minimum of 1
// is enforced.
func WithBufferSize[T any](n int) Option[T] {
	return func(s *Signal[T]) {
		s.bufferSize = max(n, 1)
	}
}

// Signal is a concurrency-safe reactive value.
type Signal[T any] struct {
	mu         sync.RWMutex
	value      T
	version    uint64
	equal      func(a, b T) bool
	watchers   []watcher[T]
	nextID     uint64
	subs       map[*subscriber[T]]struct{}
	bufferSize int
	closed     bool
	cleanupWg  sync.WaitGroup
}

type watcher[T any] struct {
	id uint64
	fn func(T)
}

// New creates a signal holding initial.
func New[T any](initial T, opts ...Option[T]) *Signal[T] {
	s := &Signal[T]{
		value:      initial,
		equal:      func(a, b T) bool { return reflect.DeepEqual(a, b) },
		subs:       make(map[*subscriber[T]]struct{}),
		bufferSize: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Version counts the changes accepted by Set and Update.
func (s *Signal[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set stores v and notifies listeners when it differs from the current
// value. It reports whether a change was recorded.
func (s *Signal[T]) Set(v T) bool {
	return s.Update(func(T) T { return v })
}

// Update replaces the value with fn(current). fn runs under the signal's
// lock and must not call back into the signal.
func (s *Signal[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	next := fn(s.value)
	if s.equal(s.value, next) {
		s.mu.Unlock()
		return false
	}
	s.value = next
	s.version++
	if s.closed {
		s.mu.Unlock()
		return true
	}
	watchers := append([]watcher[T](nil), s.watchers...)
	subs := make([]*subscriber[T], 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		w.fn(next)
	}
	for _, sub := range subs {
		sub.send(next)
	}
	return true
}

// Watch registers fn to run after every accepted change. The returned
// function removes the watcher and is safe to call more than once.
func (s *Signal[T]) Watch(fn func(T)) (stop func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers = append(s.watchers, watcher[T]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, w := range s.watchers {
				if w.id == id {
					s.watchers = append(s.watchers[:i:i], s.watchers[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribe returns a subscriber receiving every accepted change. The
// subscription ends when ctx is cancelled, the subscriber is closed, or the
// signal is closed.
func (s *Signal[T]) Subscribe(ctx context.Context) Subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := newSubscriber[T](s.bufferSize)
	if s.closed {
		_ = sub.Close()
		return sub
	}
	s.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		s.cleanupWg.Add(1)
		go func() {
			defer s.cleanupWg.Done()
			select {
			case <-ctx.Done():
			case <-sub.closedCh:
			}
			s.unsubscribe(sub)
		}()
	}

	return sub
}

// Close stops notifications and closes every subscriber. It is safe to call
// more than once.
func (s *Signal[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for sub := range s.subs {
		_ = sub.Close()
	}
	clear(s.subs)
	s.watchers = nil
	s.mu.Unlock()

	s.cleanupWg.Wait()
	return nil
}

func (s *Signal[T]) unsubscribe(sub *subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, sub)
	_ = sub.Close()
}
