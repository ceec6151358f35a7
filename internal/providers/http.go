package providers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DefaultRequestTimeout bounds every outbound provider request.
const DefaultRequestTimeout = 10 * time.Second

// StatusError maps a non-2xx provider response to the error taxonomy.
// 429 yields a RateLimitedError carrying any Retry-After hint.
func StatusError(source string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitedError{Source: source, RetryAfter: retryAfterHint(resp)}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d", ErrAuth, source, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s returned 404", ErrNotFound, source)
	default:
		return fmt.Errorf("%w: %s returned %d", ErrNetwork, source, resp.StatusCode)
	}
}

// retryAfterHint parses the Retry-After response header, tolerating both
// delta-seconds and HTTP-date forms. Zero means no usable hint.
func retryAfterHint(resp *http.Response) time.Duration {
	value := resp.Header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}
