// Package environment names the deployment a process runs in and carries it
// through context.Context.
//
// The environment decides whether developer diagnostics, such as suite
// panics and display-mode misconfiguration warnings, are logged. Development
// enables them; staging and production keep them quiet unless a logger is
// injected explicitly.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsDevelopment() {
//	    opts = append(opts, form.WithLogger(log))
//	}
//
//	r.Use(environment.Middleware(env))
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
//
// Missing values resolve to the zero value; nothing here returns an error.
package environment
