package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		submitted     string
		canonical     string
		caseSensitive bool
		want          MatchResult
	}{
		{"identical", "perro", "perro", false, MatchExact},
		{"case folded", "Perro", "perro", false, MatchExact},
		{"surrounding junk stripped", "  perro! ", "perro", false, MatchExact},
		{"punctuation on canonical", "perro", "¡perro!", false, MatchExact},
		{"case sensitive identical", "perro", "perro", true, MatchExact},
		{"case sensitive mismatch", "PERRO", "perro", true, MatchMismatch},

		{"empty submission", "", "perro", false, MatchMismatch},
		{"whitespace only", "   ", "perro", false, MatchMismatch},
		{"punctuation only", "!?.", "perro", false, MatchMismatch},

		{"one substitution", "pirro", "perro", false, MatchTypo},
		{"one deletion", "pero", "perro", false, MatchTypo},
		{"one insertion", "perrro", "perro", false, MatchTypo},
		{"one edit on short word", "cst", "cat", false, MatchTypo},
		{"accent counts as one edit", "cafe", "café", false, MatchTypo},

		{"two edits, long enough", "elefant", "elephant", false, MatchTypo},
		{"two edits, too short", "tac", "cat", false, MatchMismatch},
		{"three edits", "gato", "perro", false, MatchMismatch},
		{"unrelated words", "house", "perro", false, MatchMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.submitted, tt.canonical, tt.caseSensitive)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchResultCredits(t *testing.T) {
	assert.True(t, MatchExact.Credits())
	assert.True(t, MatchTypo.Credits())
	assert.False(t, MatchMismatch.Credits())
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"über", "uber", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}
