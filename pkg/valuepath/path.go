package valuepath

import (
	"strconv"
	"strings"
)

// MaxIndex bounds numeric segments so a hostile path cannot force a huge
// slice allocation.
const MaxIndex = 10_000

// IsValid reports whether path matches the dot-notation grammar.
func IsValid(path string) bool {
	if path == "" {
		return false
	}
	for seg := range strings.SplitSeq(path, ".") {
		if !validSegment(seg) {
			return false
		}
	}
	return true
}

// Normalize trims surrounding whitespace and rewrites bracket indexes
// ("items[0].name") into dot form ("items.0.name"). It reports false when
// the result is not a valid path.
func Normalize(path string) (string, bool) {
	p := strings.TrimSpace(path)
	if strings.ContainsAny(p, "[]") {
		var b strings.Builder
		b.Grow(len(p) + 2)
		open := false
		for i := 0; i < len(p); i++ {
			switch c := p[i]; c {
			case '[':
				if open {
					return "", false
				}
				open = true
				if i > 0 {
					b.WriteByte('.')
				}
			case ']':
				if !open {
					return "", false
				}
				open = false
				// an index must be followed by a dot, another index, or the end
				if i+1 < len(p) && p[i+1] != '.' && p[i+1] != '[' {
					return "", false
				}
			case '.':
				if open {
					return "", false
				}
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		}
		if open {
			return "", false
		}
		p = b.String()
	}
	if !IsValid(p) {
		return "", false
	}
	return p, true
}

// Split validates path and returns its segments.
func Split(path string) ([]string, error) {
	if !IsValid(path) {
		return nil, ErrInvalidPath
	}
	segs := strings.Split(path, ".")
	for _, seg := range segs {
		if idx, ok := index(seg); ok && idx > MaxIndex {
			return nil, ErrIndexOutOfRange
		}
	}
	return segs, nil
}

// Join builds a path from segments without validating it.
func Join(segs ...string) string {
	return strings.Join(segs, ".")
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if isDigits(seg) {
		return true
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func index(seg string) (int, bool) {
	if !isDigits(seg) {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return n, true
}
