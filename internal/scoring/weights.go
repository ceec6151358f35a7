package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig indicates invalid scoring configuration. It surfaces at
// construction only, never at query time.
var ErrConfig = errors.New("scoring configuration error")

// weightTolerance is how far the weight sum may drift from 1.0 before the
// configuration is rejected.
const weightTolerance = 0.001

// Weights holds the contribution of each similarity component to the
// composite score.
type Weights struct {
	Title    float64
	Artist   float64
	Duration float64
}

// DefaultWeights returns the stock weighting: title 0.5, artist 0.3,
// duration 0.2.
func DefaultWeights() Weights {
	return Weights{Title: 0.5, Artist: 0.3, Duration: 0.2}
}

// Validate checks that every weight is non-negative and the sum is within
// tolerance of 1.0.
func (w Weights) Validate() error {
	if w.Title < 0 || w.Artist < 0 || w.Duration < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrConfig)
	}
	sum := w.Title + w.Artist + w.Duration
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.3f, want 1.0", ErrConfig, sum)
	}
	return nil
}
