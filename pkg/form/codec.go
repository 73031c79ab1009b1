package form

import (
	"errors"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

// encode converts a model into the path-addressable map the controls are
// bound to. map[string]any models are deep-copied; anything else goes
// through its JSON representation.
func encode[T any](v T) (map[string]any, error) {
	if m, ok := any(v).(map[string]any); ok {
		if m == nil {
			return map[string]any{}, nil
		}
		return valuepath.Clone(m), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrUnsupportedModel, err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Join(ErrUnsupportedModel, err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// decode is the inverse of encode.
func decode[T any](m map[string]any) (T, error) {
	var out T
	if _, ok := any(out).(map[string]any); ok {
		return any(valuepath.Clone(m)).(T), nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return out, errors.Join(ErrUnsupportedModel, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.Join(ErrUnsupportedModel, err)
	}
	return out, nil
}
