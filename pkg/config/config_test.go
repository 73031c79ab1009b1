package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type loadOnceConfig struct {
	Debounce time.Duration `env:"CONFIG_TEST_DEBOUNCE" envDefault:"50ms"`
	Mode     string        `env:"CONFIG_TEST_MODE" envDefault:"on-blur-or-submit"`
}

type requiredConfig struct {
	Value string `env:"CONFIG_TEST_REQUIRED_VALUE,required"`
}

type parseConfig struct {
	Value int `env:"CONFIG_TEST_PARSE_VALUE" envDefault:"1"`
}

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_TEST_DEBOUNCE", "120ms")

	var cfg loadOnceConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 120*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "on-blur-or-submit", cfg.Mode)

	t.Setenv("CONFIG_TEST_DEBOUNCE", "1s")
	var again loadOnceConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, 120*time.Millisecond, again.Debounce, "type is parsed once")
}

func TestLoad_Errors(t *testing.T) {
	assert.ErrorIs(t, config.Load[loadOnceConfig](nil), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestParse(t *testing.T) {
	t.Setenv("CONFIG_TEST_PARSE_VALUE", "2")
	cfg, err := config.Parse[parseConfig]()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Value)

	t.Setenv("CONFIG_TEST_PARSE_VALUE", "3")
	cfg, err = config.Parse[parseConfig]()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Value)

	t.Setenv("CONFIG_TEST_PARSE_VALUE", "nope")
	_, err = config.Parse[parseConfig]()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadDependencies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    map[string][]string
		wantErr bool
	}{
		{
			name: "valid map",
			yaml: "password:\n  - confirmPassword\naddress.country: [address.zip, address.state]\n",
			want: map[string][]string{
				"password":        {"confirmPassword"},
				"address.country": {"address.zip", "address.state"},
			},
		},
		{name: "empty document", yaml: "", want: map[string][]string{}},
		{name: "invalid trigger", yaml: "a..b: [c]\n", wantErr: true},
		{name: "invalid dependent", yaml: "a: [\".c\"]\n", wantErr: true},
		{name: "self dependency", yaml: "a: [a]\n", wantErr: true},
		{name: "wrong shape", yaml: "- a\n- b\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := config.LoadDependencies(strings.NewReader(tt.yaml))
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidDependencies)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDependenciesFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadDependenciesFile("does-not-exist.yaml")
	assert.ErrorIs(t, err, config.ErrInvalidDependencies)
}
