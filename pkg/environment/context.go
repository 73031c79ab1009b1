package environment

import (
	"context"
	"strings"
)

// Environment names the deployment a process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps an environment name, including the short forms dev, stage and
// prod, to an Environment. Unknown names resolve to Development so that
// diagnostics stay on outside known deployments.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

// IsDevelopment reports whether developer diagnostics should be emitted.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

type contextKey struct{}

// WithContext stores env in ctx.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none is set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsDevelopment reports whether ctx carries the development environment.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

// IsProduction reports whether ctx carries the production environment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}
