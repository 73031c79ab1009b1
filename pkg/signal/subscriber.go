package signal

import "sync"

// Subscriber receives signal values over a channel.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the
	// subscription ends.
	Receive() <-chan T

	// Close ends the subscription. It is idempotent.
	Close() error
}

type subscriber[T any] struct {
	ch       chan T
	closedCh chan struct{}
	closed   bool
	mu       sync.Mutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch:       make(chan T, bufferSize),
		closedCh: make(chan struct{}),
	}
}

func (s *subscriber[T]) Receive() <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.closedCh)
	}
	return nil
}

// send delivers v, evicting the oldest queued value when the buffer is full.
func (s *subscriber[T]) send(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- v:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}
