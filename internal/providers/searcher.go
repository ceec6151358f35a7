package providers

import (
	"context"

	"cadence/internal/catalog"
)

// Searcher is implemented once per integrated catalog. Search returns an
// empty slice for "no results" and reserves errors for infrastructure
// failures (classified with the sentinels in this package). Implementations
// must honor context cancellation.
type Searcher interface {
	Source() catalog.Source
	Search(ctx context.Context, title, artist string) ([]catalog.RawCandidate, error)
}

// Detailer is implemented by providers whose search results are summaries
// that need enrichment before tag merging. The orchestrator fetches full
// details only for the selected candidate, never for every search hit.
type Detailer interface {
	GetFullDetails(ctx context.Context, nativeID string) (catalog.RawCandidate, error)
}

// Registry holds the enabled searchers in priority order (first entry wins
// score ties).
type Registry struct {
	order     []catalog.Source
	searchers map[catalog.Source]Searcher
}

// NewRegistry builds a registry from searchers, preserving argument order as
// the priority order. Duplicate sources keep the first registration.
func NewRegistry(searchers ...Searcher) *Registry {
	r := &Registry{searchers: make(map[catalog.Source]Searcher, len(searchers))}
	for _, s := range searchers {
		if s == nil {
			continue
		}
		src := s.Source()
		if _, exists := r.searchers[src]; exists {
			continue
		}
		r.order = append(r.order, src)
		r.searchers[src] = s
	}
	return r
}

// Priority returns the registered sources in priority order.
func (r *Registry) Priority() []catalog.Source {
	out := make([]catalog.Source, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the registered searchers in priority order.
func (r *Registry) All() []Searcher {
	out := make([]Searcher, 0, len(r.order))
	for _, src := range r.order {
		out = append(out, r.searchers[src])
	}
	return out
}

// Lookup returns the searcher for a source, if registered.
func (r *Registry) Lookup(source catalog.Source) (Searcher, bool) {
	s, ok := r.searchers[source]
	return s, ok
}

// Len reports the number of registered searchers.
func (r *Registry) Len() int {
	return len(r.order)
}
