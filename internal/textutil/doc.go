// Package textutil provides the text normalization and similarity primitives
// used by candidate matching.
//
// The primary use cases are:
//   - Normalizing titles and artist names into a canonical comparison form
//   - Computing word-aligned Levenshtein similarity between two strings
//   - Scoring how closely two track durations agree
//
// Normalization lowercases text, folds diacritics to their ASCII base form,
// drops every character that is not alphanumeric or whitespace, and collapses
// whitespace runs. The word-aligned similarity tolerates word-order
// permutations and small typos while still penalizing missing or extra words.
package textutil
