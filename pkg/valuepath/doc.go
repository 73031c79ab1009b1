// Package valuepath reads and writes values addressed by dot-notation paths
// inside nested plain data (map[string]any and []any trees, as produced by
// JSON decoding).
//
// Paths are sequences of segments separated by single dots. A segment is
// either an identifier ([A-Za-z_][A-Za-z0-9_]*) or a non-negative decimal
// index. Numeric segments index into slices; when a container has to be
// created, a numeric segment produces a slice and any other segment produces
// a map.
//
// # Usage
//
//	model := map[string]any{"user": map[string]any{"email": ""}}
//
//	next, err := valuepath.Set(model, "user.email", "user@example.com")
//	if err != nil {
//		// malformed path
//	}
//	email, ok := valuepath.Get(next, "user.email")
//
// Set and Delete never mutate their input. Containers on the written path are
// copied; untouched siblings are shared with the input.
//
// # Error Handling
//
// Get never fails: any missing or mistyped intermediate node reports
// (nil, false). Set and Delete return a *PathError wrapping ErrInvalidPath or
// ErrIndexOutOfRange when called with a malformed path, since that is a
// programming error rather than a data condition.
package valuepath
