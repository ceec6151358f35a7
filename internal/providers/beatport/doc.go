// Package beatport implements the provider search adapter for the Beatport
// catalog API.
//
// Search hits the track search endpoint and returns summary candidates;
// GetFullDetails fetches one track record for enrichment before tag merging.
// All failures are classified with the providers error taxonomy so the
// orchestrator can treat them uniformly.
package beatport
