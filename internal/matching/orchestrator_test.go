package matching

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/providers"
)

type fakeSearcher struct {
	source  catalog.Source
	results []catalog.RawCandidate
	err     error
	calls   atomic.Int32

	details   map[string]catalog.RawCandidate
	detailErr error
}

func (f *fakeSearcher) Source() catalog.Source { return f.source }

func (f *fakeSearcher) Search(ctx context.Context, title, artist string) ([]catalog.RawCandidate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeSearcher) GetFullDetails(ctx context.Context, nativeID string) (catalog.RawCandidate, error) {
	if f.detailErr != nil {
		return catalog.RawCandidate{}, f.detailErr
	}
	full, ok := f.details[nativeID]
	if !ok {
		return catalog.RawCandidate{}, providers.ErrNotFound
	}
	return full, nil
}

// searchOnly hides GetFullDetails so the searcher is not a Detailer.
type searchOnly struct {
	inner *fakeSearcher
}

func (s searchOnly) Source() catalog.Source { return s.inner.Source() }

func (s searchOnly) Search(ctx context.Context, title, artist string) ([]catalog.RawCandidate, error) {
	return s.inner.Search(ctx, title, artist)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Providers.Beatport.MinDelayMS = 1
	cfg.Providers.Traxsource.MinDelayMS = 1
	return &cfg
}

func newTestOrchestrator(t *testing.T, searchers ...providers.Searcher) *Orchestrator {
	t.Helper()
	orch, err := NewWithDependencies(testConfig(), nil, searchers...)
	if err != nil {
		t.Fatalf("NewWithDependencies: %v", err)
	}
	return orch
}

func localTrack() catalog.LocalTrack {
	return catalog.LocalTrack{
		ID:       "track-1",
		Title:    "Strobe",
		Artist:   "deadmau5",
		Duration: 634,
	}
}

func beatportCandidate(id, title string, duration int) catalog.RawCandidate {
	return catalog.RawCandidate{
		Source:   catalog.SourceBeatport,
		NativeID: id,
		Title:    title,
		Artist:   "deadmau5",
		Duration: duration,
	}
}

func TestFindCandidatesMergesProviders(t *testing.T) {
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{beatportCandidate("1", "Strobe", 634)},
	}
	tx := &fakeSearcher{
		source: catalog.SourceTraxsource,
		results: []catalog.RawCandidate{{
			Source:   catalog.SourceTraxsource,
			NativeID: "9",
			Title:    "Strobe",
			Artist:   "deadmau5",
			Duration: 630,
		}},
	}
	orch := newTestOrchestrator(t, bp, tx)

	set := orch.FindCandidates(context.Background(), localTrack())
	if set.Failed() {
		t.Fatalf("unexpected failure: %s", set.Err)
	}
	if len(set.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(set.Candidates))
	}
	// Identical text, both inside the tight duration band: priority breaks
	// the tie in beatport's favor.
	if set.Candidates[0].Source != catalog.SourceBeatport {
		t.Errorf("top candidate from %s, want beatport", set.Candidates[0].Source)
	}
	if auto, ok := set.AutoSelected(); !ok || auto.NativeID != "1" {
		t.Errorf("exact match should auto-accept, got (%v, %v)", auto, ok)
	}
}

func TestFindCandidatesToleratesPartialFailure(t *testing.T) {
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{beatportCandidate("1", "Strobe", 634)},
	}
	tx := &fakeSearcher{source: catalog.SourceTraxsource, err: providers.ErrNetwork}
	orch := newTestOrchestrator(t, bp, tx)

	set := orch.FindCandidates(context.Background(), localTrack())
	if set.Failed() {
		t.Fatalf("one healthy provider should be enough: %s", set.Err)
	}
	if len(set.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1", len(set.Candidates))
	}
}

func TestFindCandidatesAllProvidersFailed(t *testing.T) {
	bp := &fakeSearcher{source: catalog.SourceBeatport, err: providers.ErrNetwork}
	tx := &fakeSearcher{source: catalog.SourceTraxsource, err: providers.ErrRateLimited}
	orch := newTestOrchestrator(t, bp, tx)

	set := orch.FindCandidates(context.Background(), localTrack())
	if !set.Failed() {
		t.Fatal("all providers down must surface as a failed set")
	}
	if !strings.Contains(set.Err, "beatport") || !strings.Contains(set.Err, "traxsource") {
		t.Errorf("error should name both providers: %s", set.Err)
	}
	if len(set.Candidates) != 0 {
		t.Errorf("failed set should carry no candidates, got %d", len(set.Candidates))
	}
}

func TestFindCandidatesEmptyResultsIsNotFailure(t *testing.T) {
	bp := &fakeSearcher{source: catalog.SourceBeatport}
	orch := newTestOrchestrator(t, bp)

	set := orch.FindCandidates(context.Background(), localTrack())
	if set.Failed() {
		t.Errorf("zero results is not a failure: %s", set.Err)
	}
	if len(set.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(set.Candidates))
	}
}

func TestFindCandidatesUsesCache(t *testing.T) {
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{beatportCandidate("1", "Strobe", 634)},
	}
	orch := newTestOrchestrator(t, bp)

	track := localTrack()
	orch.FindCandidates(context.Background(), track)
	orch.FindCandidates(context.Background(), track)
	if calls := bp.calls.Load(); calls != 1 {
		t.Errorf("second identical query should hit the cache, provider called %d times", calls)
	}

	// A different query misses.
	other := track
	other.Title = "Ghosts n Stuff"
	orch.FindCandidates(context.Background(), other)
	if calls := bp.calls.Load(); calls != 2 {
		t.Errorf("distinct query should reach the provider, called %d times", calls)
	}
}

func TestFindCandidatesDeduplicates(t *testing.T) {
	duplicate := beatportCandidate("1", "Strobe", 634)
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{duplicate, duplicate},
	}
	orch := newTestOrchestrator(t, bp)

	set := orch.FindCandidates(context.Background(), localTrack())
	if len(set.Candidates) != 1 {
		t.Errorf("duplicate candidate ids should collapse, got %d", len(set.Candidates))
	}
}

func TestFindCandidatesForManyPreservesOrder(t *testing.T) {
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{beatportCandidate("1", "Strobe", 634)},
	}
	orch := newTestOrchestrator(t, bp)

	tracks := make([]catalog.LocalTrack, 6)
	for i := range tracks {
		tracks[i] = localTrack()
		tracks[i].ID = string(rune('a' + i))
		tracks[i].Title = "Track " + tracks[i].ID
	}

	sets := orch.FindCandidatesForMany(context.Background(), tracks)
	if len(sets) != len(tracks) {
		t.Fatalf("got %d sets, want %d", len(sets), len(tracks))
	}
	for i, set := range sets {
		if set.TrackID != tracks[i].ID {
			t.Errorf("sets[%d].TrackID = %s, want %s", i, set.TrackID, tracks[i].ID)
		}
	}
}

func TestFindCandidatesForManyCancelled(t *testing.T) {
	bp := &fakeSearcher{source: catalog.SourceBeatport}
	orch := newTestOrchestrator(t, bp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tracks := []catalog.LocalTrack{localTrack(), localTrack()}
	done := make(chan []catalog.CandidateSet, 1)
	go func() { done <- orch.FindCandidatesForMany(ctx, tracks) }()

	select {
	case sets := <-done:
		if len(sets) != 2 {
			t.Fatalf("got %d sets, want 2", len(sets))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch did not return after cancellation")
	}
}

func TestApplySelectionEnriches(t *testing.T) {
	summary := beatportCandidate("1", "Strobe", 634)
	full := summary
	full.BPM = 128
	full.Label = "mau5trap"
	bp := &fakeSearcher{
		source:  catalog.SourceBeatport,
		results: []catalog.RawCandidate{summary},
		details: map[string]catalog.RawCandidate{"1": full},
	}
	orch := newTestOrchestrator(t, bp)

	local := localTrack()
	set := orch.FindCandidates(context.Background(), local)
	selection, err := set.Select("beatport:1")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	merged, applied, err := orch.ApplySelection(context.Background(), selection, local)
	if err != nil || !applied {
		t.Fatalf("ApplySelection: applied=%v err=%v", applied, err)
	}
	if merged.BPM != 128 || merged.Label != "mau5trap" {
		t.Errorf("enriched details missing from merge: %+v", merged)
	}
}

func TestApplySelectionFallsBackOnEnrichmentFailure(t *testing.T) {
	summary := beatportCandidate("1", "Strobe", 634)
	summary.Label = "mau5trap"
	bp := &fakeSearcher{
		source:    catalog.SourceBeatport,
		results:   []catalog.RawCandidate{summary},
		detailErr: providers.ErrNetwork,
	}
	orch := newTestOrchestrator(t, bp)

	local := localTrack()
	set := orch.FindCandidates(context.Background(), local)
	selection, err := set.Select("beatport:1")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	merged, applied, err := orch.ApplySelection(context.Background(), selection, local)
	if err != nil || !applied {
		t.Fatalf("ApplySelection: applied=%v err=%v", applied, err)
	}
	if merged.Label != "mau5trap" {
		t.Errorf("should fall back to the carried candidate, got %+v", merged)
	}
}

func TestApplySelectionWithoutDetailer(t *testing.T) {
	summary := beatportCandidate("1", "Strobe", 634)
	bp := &fakeSearcher{source: catalog.SourceBeatport, results: []catalog.RawCandidate{summary}}
	orch := newTestOrchestrator(t, searchOnly{inner: bp})

	local := localTrack()
	set := orch.FindCandidates(context.Background(), local)
	selection, err := set.Select("beatport:1")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if _, applied, err := orch.ApplySelection(context.Background(), selection, local); err != nil || !applied {
		t.Errorf("search-only providers still apply: applied=%v err=%v", applied, err)
	}
}

func TestApplySelectionNoMatch(t *testing.T) {
	bp := &fakeSearcher{source: catalog.SourceBeatport}
	orch := newTestOrchestrator(t, bp)

	local := localTrack()
	set := orch.FindCandidates(context.Background(), local)
	_, applied, err := orch.ApplySelection(context.Background(), set.NoMatch(), local)
	if err != nil {
		t.Fatalf("ApplySelection: %v", err)
	}
	if applied {
		t.Error("no-match selection must not apply tags")
	}
}

func TestApplySelectionTrackMismatch(t *testing.T) {
	candidate := beatportCandidate("1", "Strobe", 634)
	bp := &fakeSearcher{source: catalog.SourceBeatport, results: []catalog.RawCandidate{candidate}}
	orch := newTestOrchestrator(t, bp)

	selection := catalog.Selection{TrackID: "other-track", Candidate: &candidate}
	if _, _, err := orch.ApplySelection(context.Background(), selection, localTrack()); err == nil {
		t.Fatal("selection for a different track must be rejected")
	}
}

func TestNewWithDependenciesRejectsEmptyRegistry(t *testing.T) {
	if _, err := NewWithDependencies(testConfig(), nil); err == nil {
		t.Fatal("no searchers must fail construction")
	}
}

func TestNewWithDependenciesRejectsBadScoring(t *testing.T) {
	cfg := testConfig()
	cfg.Scoring.TitleWeight = 0.9
	bp := &fakeSearcher{source: catalog.SourceBeatport}
	if _, err := NewWithDependencies(cfg, nil, bp); err == nil {
		t.Fatal("invalid weights must fail construction")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := newSearchCache(time.Minute)
	base := time.Now()
	cache.now = func() time.Time { return base }

	key := cacheKey(catalog.SourceBeatport, "Strobe", "deadmau5")
	cache.put(key, []catalog.RawCandidate{beatportCandidate("1", "Strobe", 634)})
	if _, ok := cache.get(key); !ok {
		t.Fatal("fresh entry should hit")
	}

	cache.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := cache.get(key); ok {
		t.Error("expired entry should miss")
	}
}

func TestCacheKeyNormalizes(t *testing.T) {
	a := cacheKey(catalog.SourceBeatport, "Strobe  ", "Deadmau5")
	b := cacheKey(catalog.SourceBeatport, "strobe", "deadmau5")
	if a != b {
		t.Errorf("normalized queries should share a key: %q vs %q", a, b)
	}
	if a == cacheKey(catalog.SourceTraxsource, "strobe", "deadmau5") {
		t.Error("keys must be provider-scoped")
	}
}

func TestEmptyBatch(t *testing.T) {
	bp := &fakeSearcher{source: catalog.SourceBeatport}
	orch := newTestOrchestrator(t, bp)
	if sets := orch.FindCandidatesForMany(context.Background(), nil); len(sets) != 0 {
		t.Errorf("empty batch should return empty sets, got %d", len(sets))
	}
}
