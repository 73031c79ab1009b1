package valuepath

import (
	"slices"
	"strconv"
	"strings"
)

// Get resolves path inside obj. Missing intermediate nodes, type mismatches
// and malformed paths all report (nil, false).
func Get(obj any, path string) (any, bool) {
	if !IsValid(path) {
		return nil, false
	}
	current := obj
	for seg := range strings.SplitSeq(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, ok := index(seg)
			if !ok || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set returns a copy of obj with value stored at path. Intermediate
// containers are created as needed; a non-container value standing in the
// way is replaced.
func Set(obj map[string]any, path string, value any) (map[string]any, error) {
	segs, err := Split(path)
	if err != nil {
		return nil, &PathError{Op: "set", Path: path, Err: err}
	}
	if obj == nil {
		obj = map[string]any{}
	}
	root, _ := setIn(obj, segs, value).(map[string]any)
	return root, nil
}

// Delete returns a copy of obj without the value at path. Slice elements are
// removed and later elements shift down. A path that does not exist yields a
// deep copy of obj.
func Delete(obj map[string]any, path string) (map[string]any, error) {
	segs, err := Split(path)
	if err != nil {
		return nil, &PathError{Op: "delete", Path: path, Err: err}
	}
	if _, ok := Get(obj, path); !ok {
		return Clone(obj), nil
	}
	root, _ := deleteIn(obj, segs).(map[string]any)
	return root, nil
}

// Paths lists every leaf path in obj in sorted order. Empty maps and slices
// count as leaves.
func Paths(obj any) []string {
	var out []string
	collect(obj, "", &out)
	slices.Sort(out)
	return out
}

// Clone deep-copies map[string]any and []any trees. Other values are
// returned as is.
func Clone[T any](v T) T {
	out, _ := cloneValue(v).(T)
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		if typed == nil {
			return typed
		}
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = cloneValue(v)
		}
		return clone
	case []any:
		if typed == nil {
			return typed
		}
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneValue(v)
		}
		return clone
	default:
		return typed
	}
}

func setIn(node any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	seg, rest := segs[0], segs[1:]

	if m, ok := node.(map[string]any); ok {
		next := make(map[string]any, len(m)+1)
		for k, v := range m {
			next[k] = v
		}
		next[seg] = setIn(m[seg], rest, value)
		return next
	}

	if idx, ok := index(seg); ok {
		src, _ := node.([]any)
		next := make([]any, max(len(src), idx+1))
		copy(next, src)
		next[idx] = setIn(next[idx], rest, value)
		return next
	}

	return map[string]any{seg: setIn(nil, rest, value)}
}

func deleteIn(node any, segs []string) any {
	seg, rest := segs[0], segs[1:]
	switch typed := node.(type) {
	case map[string]any:
		next := make(map[string]any, len(typed))
		for k, v := range typed {
			next[k] = v
		}
		if len(rest) == 0 {
			delete(next, seg)
		} else {
			next[seg] = deleteIn(typed[seg], rest)
		}
		return next
	case []any:
		idx, _ := index(seg)
		if len(rest) == 0 {
			return slices.Delete(slices.Clone(typed), idx, idx+1)
		}
		next := slices.Clone(typed)
		next[idx] = deleteIn(typed[idx], rest)
		return next
	default:
		return node
	}
}

func collect(node any, prefix string, out *[]string) {
	join := func(seg string) string {
		if prefix == "" {
			return seg
		}
		return prefix + "." + seg
	}
	switch typed := node.(type) {
	case map[string]any:
		if len(typed) == 0 && prefix != "" {
			*out = append(*out, prefix)
			return
		}
		for k, v := range typed {
			collect(v, join(k), out)
		}
	case []any:
		if len(typed) == 0 && prefix != "" {
			*out = append(*out, prefix)
			return
		}
		for i, v := range typed {
			collect(v, join(strconv.Itoa(i)), out)
		}
	default:
		if prefix != "" {
			*out = append(*out, prefix)
		}
	}
}
