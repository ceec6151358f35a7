// Package library persists the local track library and the tag write journal
// in SQLite.
//
// The database lives in the configured data directory and is guarded by a
// file lock so only one process writes at a time. Applying a merged tag set
// updates the track row and journals every written field with its provenance
// in the same transaction.
package library
