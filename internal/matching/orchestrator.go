package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"cadence/internal/catalog"
	"cadence/internal/config"
	"cadence/internal/logging"
	"cadence/internal/providers"
	"cadence/internal/providers/beatport"
	"cadence/internal/providers/traxsource"
	"cadence/internal/ratelimit"
	"cadence/internal/scoring"
	"cadence/internal/tagmerge"
)

// Orchestrator coordinates candidate search, ranking, and selection across
// every enabled provider. Safe for concurrent use.
type Orchestrator struct {
	logger           *slog.Logger
	registry         *providers.Registry
	ranker           *scoring.Ranker
	gates            map[catalog.Source]*ratelimit.Gate
	timeout          time.Duration
	batchConcurrency int
	cache            *searchCache
}

// New constructs an orchestrator with the provider clients the configuration
// enables, in the configured priority order.
func New(cfg *config.Config, logger *slog.Logger) (*Orchestrator, error) {
	searchers := make([]providers.Searcher, 0, len(cfg.Search.Priority))
	for _, tag := range cfg.Search.Priority {
		settings, ok := cfg.Provider(tag)
		if !ok || !settings.Enabled {
			continue
		}
		switch tag {
		case "beatport":
			client, err := beatport.New(settings.BaseURL, settings.Token)
			if err != nil {
				return nil, fmt.Errorf("configure beatport: %w", err)
			}
			searchers = append(searchers, client)
		case "traxsource":
			client, err := traxsource.New(settings.BaseURL, settings.Token)
			if err != nil {
				return nil, fmt.Errorf("configure traxsource: %w", err)
			}
			searchers = append(searchers, client)
		}
	}
	return NewWithDependencies(cfg, logger, searchers...)
}

// NewWithDependencies constructs an orchestrator around injected searchers
// (used in tests). Rate gates are still built from the configuration when a
// provider section matches the searcher's source.
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, searchers ...providers.Searcher) (*Orchestrator, error) {
	registry := providers.NewRegistry(searchers...)
	if registry.Len() == 0 {
		return nil, errors.New("no search providers enabled")
	}

	ranker, err := scoring.NewRanker(cfg.ScoringParams())
	if err != nil {
		return nil, err
	}

	gates := make(map[catalog.Source]*ratelimit.Gate, registry.Len())
	for _, source := range registry.Priority() {
		params := ratelimit.Params{}
		if settings, ok := cfg.Provider(source.String()); ok {
			params.MaxConcurrent = settings.MaxConcurrent
			params.MinDelay = time.Duration(settings.MinDelayMS) * time.Millisecond
			params.CooldownDelay = time.Duration(settings.RateLimitDelayMS) * time.Millisecond
		}
		gates[source] = ratelimit.NewGate(params)
	}

	timeout := time.Duration(cfg.Search.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = providers.DefaultRequestTimeout
	}
	batchConcurrency := cfg.Search.BatchConcurrency
	if batchConcurrency <= 0 {
		batchConcurrency = 1
	}

	return &Orchestrator{
		logger:           logging.NewComponentLogger(logger, "matching"),
		registry:         registry,
		ranker:           ranker,
		gates:            gates,
		timeout:          timeout,
		batchConcurrency: batchConcurrency,
		cache:            newSearchCache(time.Duration(cfg.Search.CacheTTLMinutes) * time.Minute),
	}, nil
}

type providerResult struct {
	source     catalog.Source
	candidates []catalog.RawCandidate
	err        error
}

// FindCandidates queries every enabled provider for the track and returns the
// ranked candidate set. Individual provider failures are logged and
// tolerated; the set carries an error only when all providers failed.
func (o *Orchestrator) FindCandidates(ctx context.Context, track catalog.LocalTrack) catalog.CandidateSet {
	set := catalog.CandidateSet{
		TrackID:  track.ID,
		Title:    track.Title,
		Artist:   track.Artist,
		Duration: track.Duration,
	}

	results := make(chan providerResult, o.registry.Len())
	var wg sync.WaitGroup
	for _, searcher := range o.registry.All() {
		wg.Add(1)
		go func(s providers.Searcher) {
			defer wg.Done()
			results <- o.searchOne(ctx, s, track)
		}(searcher)
	}
	wg.Wait()
	close(results)

	var raw []catalog.RawCandidate
	var failures []string
	succeeded := 0
	for result := range results {
		if result.err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", result.source, result.err))
			o.logger.Warn("provider search failed",
				logging.String("source", result.source.String()),
				logging.String("track_id", track.ID),
				logging.Error(result.err))
			continue
		}
		succeeded++
		raw = append(raw, result.candidates...)
	}

	if succeeded == 0 && len(failures) > 0 {
		set.Err = strings.Join(failures, "; ")
		return set
	}

	set.Candidates = o.ranker.Rank(track, dedupe(raw))
	if len(set.Candidates) > 0 && o.ranker.AutoAccept(set.Candidates[0].Score) {
		set.MarkAutoSelected(0)
	}

	o.logger.Debug("candidate search complete",
		logging.String("track_id", track.ID),
		logging.Int("candidates", len(set.Candidates)),
		logging.Int("providers_failed", len(failures)))
	return set
}

// FindCandidatesForMany matches a batch of tracks with a bounded worker pool.
// Results are returned in input order, one set per track.
func (o *Orchestrator) FindCandidatesForMany(ctx context.Context, tracks []catalog.LocalTrack) []catalog.CandidateSet {
	sets := make([]catalog.CandidateSet, len(tracks))
	if len(tracks) == 0 {
		return sets
	}

	logger := o.logger.With(logging.String("batch_id", uuid.NewString()))
	logger.Info("matching batch started", logging.Int("tracks", len(tracks)))
	started := time.Now()

	workers := o.batchConcurrency
	if workers > len(tracks) {
		workers = len(tracks)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sets[i] = o.FindCandidates(ctx, tracks[i])
			}
		}()
	}

dispatch:
	for i := range tracks {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(tracks); j++ {
				sets[j] = catalog.CandidateSet{
					TrackID:  tracks[j].ID,
					Title:    tracks[j].Title,
					Artist:   tracks[j].Artist,
					Duration: tracks[j].Duration,
					Err:      ctx.Err().Error(),
				}
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	matched := 0
	for i := range sets {
		if !sets[i].Failed() && len(sets[i].Candidates) > 0 {
			matched++
		}
	}
	logger.Info("matching batch finished",
		logging.Int("tracks", len(tracks)),
		logging.Int("with_candidates", matched),
		logging.Duration("elapsed", time.Since(started)))
	return sets
}

// ApplySelection resolves a selection into the final tag set for the track.
// The chosen candidate is enriched with full provider details when the
// provider supports it; enrichment failures fall back to the candidate as
// carried by the selection. A no-match selection yields (zero set, false).
func (o *Orchestrator) ApplySelection(ctx context.Context, selection catalog.Selection, local catalog.LocalTrack) (tagmerge.MergedTagSet, bool, error) {
	if selection.NoMatch() {
		o.logger.Info("selection declined all candidates", logging.String("track_id", selection.TrackID))
		return tagmerge.MergedTagSet{}, false, nil
	}
	if selection.TrackID != local.ID {
		return tagmerge.MergedTagSet{}, false, fmt.Errorf("selection for track %s applied to track %s", selection.TrackID, local.ID)
	}

	candidate := o.enrich(ctx, *selection.Candidate)
	merged := tagmerge.Merge(candidate, local)
	o.logger.Info("selection applied",
		logging.String("track_id", local.ID),
		logging.String("candidate_id", candidate.ID()))
	return merged, true, nil
}

// enrich fetches the full provider record for the candidate when the source
// supports detail lookups, falling back to the summary candidate on any
// failure.
func (o *Orchestrator) enrich(ctx context.Context, candidate catalog.RawCandidate) catalog.RawCandidate {
	searcher, ok := o.registry.Lookup(candidate.Source)
	if !ok {
		return candidate
	}
	detailer, ok := searcher.(providers.Detailer)
	if !ok {
		return candidate
	}

	var full catalog.RawCandidate
	err := o.withGate(ctx, candidate.Source, func(ctx context.Context) error {
		var err error
		full, err = detailer.GetFullDetails(ctx, candidate.NativeID)
		return err
	})
	if err != nil {
		o.logger.Warn("detail enrichment failed, using search result",
			logging.String("candidate_id", candidate.ID()),
			logging.Error(err))
		return candidate
	}
	return full
}

func (o *Orchestrator) searchOne(ctx context.Context, searcher providers.Searcher, track catalog.LocalTrack) providerResult {
	source := searcher.Source()
	key := cacheKey(source, track.Title, track.Artist)
	if cached, ok := o.cache.get(key); ok {
		return providerResult{source: source, candidates: cached}
	}

	var candidates []catalog.RawCandidate
	err := o.withGate(ctx, source, func(ctx context.Context) error {
		var err error
		candidates, err = searcher.Search(ctx, track.Title, track.Artist)
		return err
	})
	if err != nil {
		return providerResult{source: source, err: err}
	}

	o.cache.put(key, candidates)
	return providerResult{source: source, candidates: candidates}
}

// withGate runs fn under the source's rate gate with the per-request timeout,
// feeding rate-limit errors back into the gate's cool-down state.
func (o *Orchestrator) withGate(ctx context.Context, source catalog.Source, fn func(context.Context) error) error {
	gate, ok := o.gates[source]
	if !ok {
		// Every registered source gets a gate at construction; this only
		// covers a candidate carried in from an unregistered source.
		gate = ratelimit.NewGate(ratelimit.Params{})
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return gate.Do(ctx, fn, func(err error) bool {
		return errors.Is(err, providers.ErrRateLimited)
	})
}

// dedupe drops repeated candidate ids, keeping the first occurrence. Scores
// are deterministic per candidate, so which duplicate survives is immaterial.
func dedupe(candidates []catalog.RawCandidate) []catalog.RawCandidate {
	if len(candidates) < 2 {
		return candidates
	}
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, candidate := range candidates {
		id := candidate.ID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, candidate)
	}
	return out
}
