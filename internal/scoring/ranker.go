package scoring

import (
	"fmt"
	"math"
	"sort"

	"cadence/internal/catalog"
	"cadence/internal/textutil"
)

// Params configures a Ranker. Zero-valued fields fall back to defaults.
type Params struct {
	Weights    Weights
	Priority   []catalog.Source
	MinScore   float64
	AutoAccept float64
	TopN       int
}

const (
	defaultMinScore   = 0.3
	defaultAutoAccept = 0.85
	defaultTopN       = 4
)

// Ranker scores and ranks remote candidates against a local track.
type Ranker struct {
	weights    Weights
	priority   map[catalog.Source]int
	minScore   float64
	autoAccept float64
	topN       int
}

// NewRanker validates params and constructs a Ranker. Invalid weights or
// thresholds fail fast with an error matching ErrConfig.
func NewRanker(params Params) (*Ranker, error) {
	weights := params.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	minScore := params.MinScore
	if minScore == 0 {
		minScore = defaultMinScore
	}
	autoAccept := params.AutoAccept
	if autoAccept == 0 {
		autoAccept = defaultAutoAccept
	}
	if minScore < 0 || minScore > 1 {
		return nil, fmt.Errorf("%w: min score %.3f outside [0, 1]", ErrConfig, minScore)
	}
	if autoAccept < 0 || autoAccept > 1 {
		return nil, fmt.Errorf("%w: auto-accept threshold %.3f outside [0, 1]", ErrConfig, autoAccept)
	}

	topN := params.TopN
	if topN == 0 {
		topN = defaultTopN
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w: top-n must be at least 1", ErrConfig)
	}

	priority := params.Priority
	if len(priority) == 0 {
		priority = catalog.Sources
	}
	ranks := make(map[catalog.Source]int, len(priority))
	for i, src := range priority {
		if _, seen := ranks[src]; !seen {
			ranks[src] = i
		}
	}

	return &Ranker{
		weights:    weights,
		priority:   ranks,
		minScore:   minScore,
		autoAccept: autoAccept,
		topN:       topN,
	}, nil
}

// Score computes the weighted composite similarity between a local track and
// one candidate. Deterministic; always in [0, 1].
func (r *Ranker) Score(local catalog.LocalTrack, candidate catalog.RawCandidate) float64 {
	titleSim := textutil.TextSimilarity(local.Title, candidate.DisplayTitle())
	artistSim := textutil.TextSimilarity(local.Artist, candidate.Artist)
	durationSim := textutil.DurationScore(local.Duration, candidate.Duration)
	score := titleSim*r.weights.Title + artistSim*r.weights.Artist + durationSim*r.weights.Duration
	// Weight sums within tolerance of 1.0 can push the composite a hair
	// outside the unit interval.
	return math.Min(1, math.Max(0, score))
}

// Rank scores every candidate, drops those below the minimum score, sorts by
// the tie-break policy, and truncates to the configured top-N.
func (r *Ranker) Rank(local catalog.LocalTrack, candidates []catalog.RawCandidate) []catalog.ScoredCandidate {
	scored := make([]catalog.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		score := r.Score(local, candidate)
		if score < r.minScore {
			continue
		}
		scored = append(scored, catalog.ScoredCandidate{RawCandidate: candidate, Score: score})
	}
	r.Sort(scored)
	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}
	return scored
}

// Sort orders scored candidates descending by score, breaking ties by
// provider priority (first configured wins) and then native id ascending.
func (r *Ranker) Sort(scored []catalog.ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if pa, pb := r.sourceRank(a.Source), r.sourceRank(b.Source); pa != pb {
			return pa < pb
		}
		return a.NativeID < b.NativeID
	})
}

// AutoAccept reports whether the score clears the auto-accept threshold.
func (r *Ranker) AutoAccept(score float64) bool {
	return score >= r.autoAccept
}

// MinScore returns the minimum score a candidate needs to be listed.
func (r *Ranker) MinScore() float64 {
	return r.minScore
}

func (r *Ranker) sourceRank(source catalog.Source) int {
	if rank, ok := r.priority[source]; ok {
		return rank
	}
	return len(r.priority)
}
