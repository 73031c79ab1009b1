// Package logger builds *slog.Logger instances for formkit components and
// provides the attribute helpers used in their diagnostics.
//
// Components never log through a global. They accept a *slog.Logger option
// and fall back to Nop, so production builds stay silent unless a logger is
// injected.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "signup"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//
//	f, err := form.New(initial, s, form.WithLogger(log))
//
//	log.Warn("display mode never shows errors",
//	    logger.Component("display"),
//	    logger.Field("email"),
//	    logger.Mode(display.OnBlur),
//	)
//
// # Context extraction
//
// ContextHandler adds attributes pulled from the context passed to the
// *Context logging methods. WithContextValue covers the common case of a
// single context key.
package logger
