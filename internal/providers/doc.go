// Package providers defines the provider search adapter contract and the
// shared error taxonomy for remote catalog integrations.
//
// Each integrated catalog implements Searcher; catalogs whose search results
// are summaries additionally implement Detailer so the orchestrator can
// enrich only the selected candidate. Failures are classified with the
// sentinel errors here so callers can distinguish transient network trouble
// from throttling, auth problems, and malformed responses.
package providers
