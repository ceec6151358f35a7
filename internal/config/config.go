package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Scoring contains the similarity weights and thresholds for candidate
// ranking.
type Scoring struct {
	TitleWeight    float64 `toml:"title_weight"`
	ArtistWeight   float64 `toml:"artist_weight"`
	DurationWeight float64 `toml:"duration_weight"`
	MinScore       float64 `toml:"min_score"`
	AutoAccept     float64 `toml:"auto_accept"`
	TopN           int     `toml:"top_n"`
}

// Search contains orchestration-wide search parameters.
type Search struct {
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
	BatchConcurrency      int      `toml:"batch_concurrency"`
	CacheTTLMinutes       int      `toml:"cache_ttl_minutes"`
	Priority              []string `toml:"priority"`
}

// Provider contains per-catalog connection and rate limiting settings.
type Provider struct {
	Enabled          bool   `toml:"enabled"`
	BaseURL          string `toml:"base_url"`
	Token            string `toml:"token"`
	MaxConcurrent    int    `toml:"max_concurrent"`
	MinDelayMS       int    `toml:"min_delay_ms"`
	RateLimitDelayMS int    `toml:"rate_limit_delay_ms"`
}

// Providers groups the integrated catalog settings.
type Providers struct {
	Beatport   Provider `toml:"beatport"`
	Traxsource Provider `toml:"traxsource"`
}

// Config encapsulates all configuration values for cadence.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Logging   Logging   `toml:"logging"`
	Scoring   Scoring   `toml:"scoring"`
	Search    Search    `toml:"search"`
	Providers Providers `toml:"providers"`
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/cadence/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. An
// empty path falls back to $CADENCE_CONFIG, then the default locations. The
// bool reports whether a file was found; with no file the defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the library database location inside the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "library.db")
}

// Provider returns the settings for the named catalog tag, if known.
func (c *Config) Provider(tag string) (Provider, bool) {
	switch tag {
	case "beatport":
		return c.Providers.Beatport, true
	case "traxsource":
		return c.Providers.Traxsource, true
	default:
		return Provider{}, false
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = os.Getenv("CADENCE_CONFIG")
	}
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("cadence.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}
