package control

import (
	"fmt"
	"slices"
	"sort"
)

// Reserved keys written by suite-driven validators.
const (
	ErrorsKey   = "errors"
	WarningsKey = "warnings"
)

// Errors is the error object attached to a control.
type Errors map[string]any

// NewErrors builds an error object from message lists. It returns nil when
// both lists are empty.
func NewErrors(errs, warnings []string) Errors {
	if len(errs) == 0 && len(warnings) == 0 {
		return nil
	}
	out := make(Errors, 2)
	if len(errs) > 0 {
		out[ErrorsKey] = slices.Clone(errs)
	}
	if len(warnings) > 0 {
		out[WarningsKey] = slices.Clone(warnings)
	}
	return out
}

// Messages returns the error messages. Messages stored under ErrorsKey win;
// otherwise every other key is flattened: nested maps contribute their leaf
// keys, anything else contributes its own key.
func (e Errors) Messages() []string {
	if len(e) == 0 {
		return nil
	}
	if raw, ok := e[ErrorsKey]; ok {
		return toStrings(raw)
	}

	var out []string
	for _, k := range sortedKeys(e) {
		if k == WarningsKey {
			continue
		}
		collectLeafKeys(k, e[k], &out)
	}
	return out
}

// Warnings returns the messages stored under WarningsKey.
func (e Errors) Warnings() []string {
	if len(e) == 0 {
		return nil
	}
	return toStrings(e[WarningsKey])
}

// HasErrors reports whether Messages is non-empty.
func (e Errors) HasErrors() bool {
	return len(e.Messages()) > 0
}

// Clone copies the top-level map and any message slices.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		if msgs, ok := v.([]string); ok {
			v = slices.Clone(msgs)
		}
		out[k] = v
	}
	return out
}

func toStrings(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case []string:
		if len(v) == 0 {
			return nil
		}
		return slices.Clone(v)
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func collectLeafKeys(key string, value any, out *[]string) {
	var nested map[string]any
	switch v := value.(type) {
	case map[string]any:
		nested = v
	case Errors:
		nested = v
	}
	if len(nested) == 0 {
		*out = append(*out, key)
		return
	}
	for _, k := range sortedKeys(nested) {
		collectLeafKeys(k, nested[k], out)
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
