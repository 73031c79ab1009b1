// Package config loads typed configuration from environment variables and
// the dependency-trigger map from YAML.
//
// Environment parsing uses github.com/caarlos0/env/v11 struct tags. A .env
// file in the working directory is loaded once through
// github.com/joho/godotenv before the first parse; real environment
// variables take precedence over it.
//
// # Usage
//
//	var cfg form.Config
//	config.MustLoad(&cfg)
//
//	deps, err := config.LoadDependenciesFile("dependencies.yaml")
//	if err != nil {
//	    return err
//	}
//	f, err := form.NewFromConfig(initial, s, cfg, form.WithDependencies(deps))
//
// Load caches one value per configuration type. Use Parse when the
// environment changes at runtime, as in tests.
//
// # Error Handling
//
//	if errors.Is(err, config.ErrParsingConfig) { /* bad or missing variables */ }
//	if errors.Is(err, config.ErrInvalidDependencies) { /* malformed YAML map */ }
package config
