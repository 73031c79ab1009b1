package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache     sync.Map // reflect.Type -> *entry
	dotenvRun sync.Once
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

// Load parses environment variables into v using its env struct tags. The
// .env file in the working directory, when present, is read once before the
// first parse. Each configuration type is parsed once per process; later
// calls copy the cached value, and a failed parse is cached too.
//
//	type Config struct {
//		DebounceTime time.Duration `env:"FORM_DEBOUNCE_TIME" envDefault:"50ms"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvRun.Do(func() { _ = godotenv.Load() })

	raw, _ := cache.LoadOrStore(reflect.TypeFor[T](), &entry{})
	e := raw.(*entry)
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})
	if e.err != nil {
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse parses environment variables into a fresh T without caching.
func Parse[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
