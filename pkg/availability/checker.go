package availability

import (
	"context"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/suite"
)

// Checker reports whether a value, such as a username, is already in use.
type Checker interface {
	IsTaken(ctx context.Context, value string) (bool, error)
}

// Registry is a Checker that also records reservations.
type Registry interface {
	Checker
	Reserve(ctx context.Context, value string) error
	Release(ctx context.Context, value string) error
}

// CheckerFunc adapts a function into a Checker.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

// IsTaken calls fn.
func (fn CheckerFunc) IsTaken(ctx context.Context, value string) (bool, error) {
	return fn(ctx, value)
}

// Normalize folds value into the form checkers store and compare.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Test registers an async suite test on field that fails with message when
// value is taken. Empty values are left to Required rules.
func Test(s *suite.Context, field, value, message string, c Checker) {
	s.TestAsync(field, message, func(ctx context.Context) (bool, error) {
		if c == nil {
			return false, ErrNilChecker
		}
		if Normalize(value) == "" {
			return true, nil
		}
		taken, err := c.IsTaken(ctx, value)
		if err != nil {
			return false, err
		}
		return !taken, nil
	})
}
