package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSearch()
	c.normalizeProviders()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSearch() {
	if c.Search.RequestTimeoutSeconds <= 0 {
		c.Search.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	if c.Search.BatchConcurrency <= 0 {
		c.Search.BatchConcurrency = defaultBatchConcurrency
	}
	if c.Search.CacheTTLMinutes < 0 {
		c.Search.CacheTTLMinutes = 0
	}
	if len(c.Search.Priority) == 0 {
		c.Search.Priority = []string{"beatport", "traxsource"}
	}
	for i, tag := range c.Search.Priority {
		c.Search.Priority[i] = strings.ToLower(strings.TrimSpace(tag))
	}
}

func (c *Config) normalizeProviders() {
	normalizeProvider(&c.Providers.Beatport, defaultBeatportBaseURL, defaultBeatportMaxConcurrent)
	normalizeProvider(&c.Providers.Traxsource, defaultTraxsourceBaseURL, defaultTraxsourceMaxConcurrent)
}

func normalizeProvider(p *Provider, baseURL string, maxConcurrent int) {
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	if p.BaseURL == "" {
		p.BaseURL = baseURL
	}
	if p.MaxConcurrent <= 0 {
		p.MaxConcurrent = maxConcurrent
	}
	if p.MinDelayMS <= 0 {
		p.MinDelayMS = defaultMinDelayMS
	}
	if p.RateLimitDelayMS <= 0 {
		p.RateLimitDelayMS = defaultRateLimitDelayMS
	}
}

// ExpandPath resolves ~ and relative segments to an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
