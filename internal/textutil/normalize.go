package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticFolder strips combining marks so accented characters compare equal
// to their ASCII spellings (deadmau5 remixes love their umlauts).
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts a string into canonical comparison form: lowercase,
// diacritics folded, punctuation removed, whitespace collapsed to single
// spaces, and trimmed. Empty input yields "". Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)
	if folded, _, err := transform.String(diacriticFolder, lowered); err == nil {
		lowered = folded
	}

	var b strings.Builder
	b.Grow(len(lowered))
	lastWasSpace := true
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			lastWasSpace = false
		case unicode.IsSpace(r):
			if !lastWasSpace {
				b.WriteByte(' ')
				lastWasSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Words normalizes the input and splits it into its whitespace-delimited
// word list. Returns nil when nothing survives normalization.
func Words(s string) []string {
	normalized := Normalize(s)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
