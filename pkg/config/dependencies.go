package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/valuepath"
)

// LoadDependencies decodes a dependency-trigger map from YAML:
//
//	password:
//	  - confirmPassword
//	address.country:
//	  - address.zip
//
// Keys and dependents are validated as field paths; a field listing itself
// is rejected.
func LoadDependencies(r io.Reader) (map[string][]string, error) {
	var raw map[string][]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string][]string{}, nil
		}
		return nil, errors.Join(ErrInvalidDependencies, err)
	}

	deps := make(map[string][]string, len(raw))
	for trigger, dependents := range raw {
		if !valuepath.IsValid(trigger) {
			return nil, fmt.Errorf("%w: invalid trigger path %q", ErrInvalidDependencies, trigger)
		}
		for _, dep := range dependents {
			if !valuepath.IsValid(dep) {
				return nil, fmt.Errorf("%w: invalid dependent path %q of %q", ErrInvalidDependencies, dep, trigger)
			}
			if dep == trigger {
				return nil, fmt.Errorf("%w: %q depends on itself", ErrInvalidDependencies, trigger)
			}
		}
		deps[trigger] = append([]string(nil), dependents...)
	}
	return deps, nil
}

// LoadDependenciesFile reads a dependency-trigger map from a YAML file.
func LoadDependenciesFile(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidDependencies, err)
	}
	defer f.Close()
	return LoadDependencies(f)
}
