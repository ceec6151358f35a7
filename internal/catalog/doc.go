// Package catalog defines the data model shared across candidate matching:
// provider sources, local tracks, raw and scored remote candidates, candidate
// sets, and selections.
//
// RawCandidate and ScoredCandidate are value objects with no shared mutable
// state; a CandidateSet groups the scored candidates for one local track
// across every queried provider. The provider-qualified candidate identifier
// ("beatport:12345") round-trips through FormatID and ParseID.
package catalog
