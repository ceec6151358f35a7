// Package scoring combines title, artist, and duration similarity into one
// weighted composite score per candidate and ranks candidates for a track.
//
// Weights must sum to 1.0; the Ranker refuses construction otherwise so a
// bad configuration fails at startup rather than at query time. Ranking is
// deterministic: descending score, ties broken by provider priority order,
// then by native id.
package scoring
