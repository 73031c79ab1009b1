package httpserver

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Option configures a Server.
type Option func(*settings)

// WithAddr sets the listen address. Empty values are ignored.
func WithAddr(addr string) Option {
	return func(s *settings) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithTimeouts sets the read, write and idle timeouts. Zero leaves a timeout
// unset.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *settings) {
		s.readTimeout = max(read, 0)
		s.writeTimeout = max(write, 0)
		s.idleTimeout = max(idle, 0)
	}
}

// WithShutdownTimeout bounds graceful shutdown. Non-positive values are
// ignored.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = logger.OrNop(l) }
}

// OnStart registers fn to run with the bound address once the server
// listens.
func OnStart(fn func(addr string)) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}

// OnStop registers fn to run after graceful shutdown.
func OnStop(fn func()) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStop = append(s.onStop, fn)
		}
	}
}
