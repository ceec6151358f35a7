// Package traxsource implements the provider search adapter for the
// Traxsource catalog.
//
// Traxsource reports track durations as "m:ss" strings and wraps results in
// a data envelope; the adapter normalizes both into catalog candidates.
// Failures are classified with the providers error taxonomy.
package traxsource
