package matching

import (
	"sync"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/textutil"
)

// searchCache memoizes provider search results for a short window, keyed per
// provider so one catalog's failure never masks another's cached hits.
type searchCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	candidates []catalog.RawCandidate
	expires    time.Time
}

func newSearchCache(ttl time.Duration) *searchCache {
	return &searchCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// cacheKey collapses query variants onto one entry via text normalization.
func cacheKey(source catalog.Source, title, artist string) string {
	return string(source) + "|" + textutil.Normalize(title) + "|" + textutil.Normalize(artist)
}

func (c *searchCache) get(key string) ([]catalog.RawCandidate, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.candidates, true
}

func (c *searchCache) put(key string, candidates []catalog.RawCandidate) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	// Lazy prune keeps the map from growing across long batch runs.
	for k, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{candidates: candidates, expires: now.Add(c.ttl)}
}
