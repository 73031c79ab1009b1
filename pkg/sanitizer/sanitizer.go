package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	dots       = regexp.MustCompile(`\.{2,}`)
	whitespace = regexp.MustCompile(`\s+`)

	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// Func transforms one input value.
type Func func(string) string

// Apply runs transforms over value in order.
func Apply(value string, transforms ...Func) string {
	for _, t := range transforms {
		if t != nil {
			value = t(value)
		}
	}
	return value
}

// Compose returns a Func running transforms in order.
func Compose(transforms ...Func) Func {
	return func(value string) string {
		return Apply(value, transforms...)
	}
}

// Trim removes surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower trims and lowercases s.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeWhitespace collapses whitespace runs into one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters except newline, carriage
// return and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// MaxLength returns a Func truncating its input to n runes.
func MaxLength(n int) Func {
	return func(s string) string {
		if n < 0 {
			return s
		}
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return string(runes[:n])
	}
}

// NormalizeEmail trims and lowercases email and collapses repeated dots in
// the local part. Values without exactly one @ are only trimmed and
// lowercased.
func NormalizeEmail(email string) string {
	email = TrimToLower(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dots.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// StripHTML removes every HTML element from s, dropping the content of
// script and style elements. Entities are unescaped so the result is plain
// text.
func StripHTML(s string) string {
	if s == "" {
		return s
	}
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
