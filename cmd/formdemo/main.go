// Command formdemo serves signup forms over HTTP. Each form session keeps
// its model, control tree and validation state on the server; clients post
// input and read back the errors the display mode allows them to show.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/modules/signup"
	"github.com/dmitrymomot/formkit/pkg/availability"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/environment"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	Service          string        `env:"APP_SERVICE" envDefault:"formdemo"`
	DependenciesFile string        `env:"FORM_DEPENDENCIES_FILE"`
	UseRedis         bool          `env:"AVAILABILITY_REDIS" envDefault:"false"`
	Reserved         []string      `env:"AVAILABILITY_RESERVED" envDefault:"admin,root,support" envSeparator:","`
	Latency          time.Duration `env:"AVAILABILITY_LATENCY" envDefault:"150ms"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app     appConfig
		httpCfg httpserver.Config
		formCfg form.Config
	)
	if err := config.Load(&app); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	if err := config.Load(&formCfg); err != nil {
		return err
	}

	env := environment.Parse(app.Env)
	log := logger.New(
		logger.WithEnvironment(app.Env, app.Service),
		logger.WithContextExtractors(environment.LoggerExtractor(), requestid.LoggerExtractor()),
	)

	deps := signup.DefaultDependencies
	if app.DependenciesFile != "" {
		loaded, err := config.LoadDependenciesFile(app.DependenciesFile)
		if err != nil {
			return err
		}
		deps = loaded
	}

	checker, probes, closeChecker, err := newChecker(ctx, app, log)
	if err != nil {
		return err
	}
	defer closeChecker()

	svc := signup.NewService(checker, formCfg,
		signup.WithDependencies(deps),
		signup.WithLogger(log),
	)
	defer svc.Close()

	r := chi.NewRouter()
	r.Use(requestid.Middleware, middleware.Recoverer, environment.Middleware(env))
	r.Get("/healthz", httpserver.HealthHandler(log))
	r.Get("/readyz", httpserver.HealthHandler(log, probes...))
	r.Mount("/forms", signup.Router(svc, log))

	log.InfoContext(ctx, "starting",
		slog.String("env", string(env)),
		logger.Duration(formCfg.DebounceTime),
		logger.Mode(formCfg.ErrorDisplayMode),
	)
	return httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

// newChecker returns the username registry: Redis-backed when enabled,
// in-memory otherwise.
func newChecker(ctx context.Context, app appConfig, log *slog.Logger) (availability.Registry, []httpserver.Probe, func(), error) {
	if !app.UseRedis {
		mem := availability.NewMemoryChecker(
			availability.WithTaken(app.Reserved...),
			availability.WithLatency(app.Latency),
		)
		return mem, nil, func() {}, nil
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	checker := availability.NewRedisChecker(client)
	for _, name := range app.Reserved {
		if err := checker.Reserve(ctx, name); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
	}
	log.InfoContext(ctx, "username registry backed by redis")

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close failed", logger.Error(err))
		}
	}
	return checker, []httpserver.Probe{redis.Healthcheck(client)}, closeFn, nil
}
