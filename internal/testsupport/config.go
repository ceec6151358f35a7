package testsupport

import (
	"path/filepath"
	"testing"

	"cadence/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Provider delays are shortened so gated tests stay fast.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Providers.Beatport.MinDelayMS = 1
	cfg.Providers.Traxsource.MinDelayMS = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithProviderToken sets the token on the named provider section.
func WithProviderToken(tag, token string) ConfigOption {
	return func(cfg *config.Config) {
		switch tag {
		case "beatport":
			cfg.Providers.Beatport.Token = token
		case "traxsource":
			cfg.Providers.Traxsource.Token = token
		}
	}
}
