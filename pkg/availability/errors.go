package availability

import "errors"

var (
	// ErrCheckFailed wraps backend failures. Validation reports them as a
	// rejected async test rather than as a taken value.
	ErrCheckFailed = errors.New("availability: check failed")

	// ErrNilChecker is returned when a rule is built without a checker.
	ErrNilChecker = errors.New("availability: nil checker")
)
