package suite

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Numeric is the constraint accepted by the numeric rules.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Rule is a prebuilt test: Check returning false records Message for Field.
type Rule struct {
	Field   string
	Message string
	Check   func() bool
	Warning bool
}

// AsWarning downgrades the rule to warning severity.
func (r Rule) AsWarning() Rule {
	r.Warning = true
	return r
}

func message(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}

// Required fails when value is empty after trimming whitespace.
func Required(field, value, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, "field is required"),
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// RequiredValue fails when value equals its zero value.
func RequiredValue[V comparable](field string, value V, msg string) Rule {
	var zero V
	return Rule{
		Field:   field,
		Message: message(msg, "field is required"),
		Check: func() bool {
			return value != zero
		},
	}
}

// Email fails unless value is a bare address with a dotted domain.
func Email(field, value, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, "must be a valid email address"),
		Check: func() bool {
			return isEmail(value)
		},
	}
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// MinLen fails when value has fewer than min characters.
func MinLen(field, value string, min int, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, fmt.Sprintf("must be at least %d characters long", min)),
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
	}
}

// MaxLen fails when value has more than max characters.
func MaxLen(field, value string, max int, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, fmt.Sprintf("must be at most %d characters long", max)),
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
	}
}

// Matches fails when value does not match pattern.
func Matches(field, value string, pattern *regexp.Regexp, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, "has an invalid format"),
		Check: func() bool {
			return pattern.MatchString(value)
		},
	}
}

// Equal fails when value differs from other.
func Equal[V comparable](field string, value, other V, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, "values must match"),
		Check: func() bool {
			return value == other
		},
	}
}

// Min fails when value is below min.
func Min[N Numeric](field string, value, min N, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, fmt.Sprintf("must be at least %v", min)),
		Check: func() bool {
			return value >= min
		},
	}
}

// Max fails when value is above max.
func Max[N Numeric](field string, value, max N, msg string) Rule {
	return Rule{
		Field:   field,
		Message: message(msg, fmt.Sprintf("must be at most %v", max)),
		Check: func() bool {
			return value <= max
		},
	}
}
