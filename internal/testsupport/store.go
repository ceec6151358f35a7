package testsupport

import (
	"context"
	"testing"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/library"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddTrack upserts a track for tests using the provided store.
func AddTrack(t testing.TB, store *library.Store, track catalog.LocalTrack) catalog.LocalTrack {
	t.Helper()

	stored, err := store.Upsert(context.Background(), track)
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return stored
}
