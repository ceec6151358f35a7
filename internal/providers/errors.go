package providers

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors classifying provider failures. Wrap with %w so callers can
// use errors.Is against the category.
var (
	ErrNetwork     = errors.New("network error")
	ErrAuth        = errors.New("authentication error")
	ErrRateLimited = errors.New("rate limited")
	ErrParse       = errors.New("parse error")
	ErrNotFound    = errors.New("not found")
)

// RateLimitedError reports provider throttling along with the suggested
// retry-after hint. Matches ErrRateLimited via errors.Is.
type RateLimitedError struct {
	Source     string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited, retry after %s", e.Source, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limited", e.Source)
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// Classify wraps err with the given sentinel and an operation label.
func Classify(marker error, operation string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", marker, operation)
	}
	return fmt.Errorf("%w: %s: %w", marker, operation, err)
}
