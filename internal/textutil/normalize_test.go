package textutil

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "Strobe", "strobe"},
		{"strips punctuation", "Don't Stop (Club Mix)!", "dont stop club mix"},
		{"collapses whitespace", "  one   two\tthree  ", "one two three"},
		{"folds diacritics", "Beyoncé & Kaskade", "beyonce kaskade"},
		{"keeps digits", "deadmau5 - 4ware", "deadmau5 4ware"},
		{"only punctuation", "!!! --- ...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Strobe (Original Mix)",
		"  Café del Mar — ’98  ",
		"UPPER lower 123",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"simple", "Strobe deadmau5", []string{"strobe", "deadmau5"}},
		{"punctuation only", "(((", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Words(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("word[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
