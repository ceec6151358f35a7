// Package matching orchestrates candidate search across the enabled remote
// catalogs: it fans a track query out to every provider under per-provider
// rate gates, ranks the merged results, and resolves a selection into a final
// tag set.
//
// Provider failures are tolerated per source; a candidate set carries an
// error only when every provider search failed. Recent search results are
// cached per provider with a short TTL so re-matching a track does not repeat
// identical requests.
package matching
