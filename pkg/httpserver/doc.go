// Package httpserver runs the demo's HTTP handler with graceful shutdown and
// exposes liveness and readiness handlers.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthHandler(log))
//	r.Get("/readyz", httpserver.HealthHandler(log, redis.Healthcheck(client)))
//
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, when SIGINT or SIGTERM arrives, or when
// Shutdown is called from elsewhere.
//
// # Errors
//
// Listen and serve failures are joined with ErrStart; shutdown failures with
// ErrShutdown.
package httpserver
