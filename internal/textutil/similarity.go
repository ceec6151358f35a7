package textutil

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// TextSimilarity computes word-aligned similarity between a query string and
// a candidate string, returning a value in [0, 1] where 1 means the strings
// normalize to the same text.
//
// Both inputs are normalized first. Each query word is aligned against its
// best-matching candidate word by normalized Levenshtein similarity, and the
// per-word maxima are averaged over the query words. Word order therefore
// does not matter ("strobe deadmau5" vs "deadmau5 strobe" scores ~1.0) while
// missing or extra words still drag the average down.
func TextSimilarity(query, candidate string) float64 {
	queryNorm := Normalize(query)
	candidateNorm := Normalize(candidate)
	if queryNorm == candidateNorm {
		if queryNorm == "" {
			return 0
		}
		return 1
	}

	queryWords := Words(queryNorm)
	candidateWords := Words(candidateNorm)
	if len(queryWords) == 0 || len(candidateWords) == 0 {
		return 0
	}

	var total float64
	for _, qw := range queryWords {
		best := 0.0
		for _, cw := range candidateWords {
			if sim := WordSimilarity(qw, cw); sim > best {
				best = sim
				if best == 1 {
					break
				}
			}
		}
		total += best
	}
	return total / float64(len(queryWords))
}

// WordSimilarity computes normalized Levenshtein similarity between two
// single words: 1 - distance/max(len). Identical words score 1, disjoint
// words approach 0.
func WordSimilarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}
