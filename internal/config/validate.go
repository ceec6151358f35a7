package config

import (
	"fmt"

	"cadence/internal/catalog"
	"cadence/internal/scoring"
)

// Validate ensures the configuration is usable. Validation failures are
// configuration errors: they fail at startup, never at query time.
func (c *Config) Validate() error {
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScoring() error {
	weights := scoring.Weights{
		Title:    c.Scoring.TitleWeight,
		Artist:   c.Scoring.ArtistWeight,
		Duration: c.Scoring.DurationWeight,
	}
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("scoring weights: %w", err)
	}
	if c.Scoring.MinScore < 0 || c.Scoring.MinScore > 1 {
		return fmt.Errorf("scoring.min_score must be between 0 and 1, got %v", c.Scoring.MinScore)
	}
	if c.Scoring.AutoAccept < 0 || c.Scoring.AutoAccept > 1 {
		return fmt.Errorf("scoring.auto_accept must be between 0 and 1, got %v", c.Scoring.AutoAccept)
	}
	if c.Scoring.TopN < 1 {
		return fmt.Errorf("scoring.top_n must be at least 1, got %d", c.Scoring.TopN)
	}
	return nil
}

func (c *Config) validateSearch() error {
	for _, tag := range c.Search.Priority {
		if _, err := catalog.ParseSource(tag); err != nil {
			return fmt.Errorf("search.priority: %w", err)
		}
		if _, ok := c.Provider(tag); !ok {
			return fmt.Errorf("search.priority: no provider section for %q", tag)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// ScoringParams converts the configured scoring section into ranker
// parameters, including the provider priority order.
func (c *Config) ScoringParams() scoring.Params {
	priority := make([]catalog.Source, 0, len(c.Search.Priority))
	for _, tag := range c.Search.Priority {
		if src, err := catalog.ParseSource(tag); err == nil {
			priority = append(priority, src)
		}
	}
	return scoring.Params{
		Weights: scoring.Weights{
			Title:    c.Scoring.TitleWeight,
			Artist:   c.Scoring.ArtistWeight,
			Duration: c.Scoring.DurationWeight,
		},
		Priority:   priority,
		MinScore:   c.Scoring.MinScore,
		AutoAccept: c.Scoring.AutoAccept,
		TopN:       c.Scoring.TopN,
	}
}
