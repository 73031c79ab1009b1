package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Probe reports whether a dependency is usable.
type Probe func(context.Context) error

// HealthHandler answers liveness without probes and readiness with them:
// 200 when every probe passes, 503 otherwise.
func HealthHandler(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	log = logger.OrNop(log)
	return func(w http.ResponseWriter, r *http.Request) {
		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness probe failed", logger.Error(err))
				http.Error(w, "NOT_READY", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if len(probes) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		_, _ = w.Write([]byte("READY"))
	}
}
