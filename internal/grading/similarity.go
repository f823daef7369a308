package grading

import (
	"strings"
	"unicode"
)

// MatchResult is the three-way verdict for a free-text answer. Callers that
// only need a boolean fold it with Credits; the distinction between exact
// and typo is kept so feedback can report near misses.
type MatchResult string

const (
	MatchExact    MatchResult = "exact"
	MatchTypo     MatchResult = "typo"
	MatchMismatch MatchResult = "mismatch"
)

// Credits reports whether the result earns credit.
func (r MatchResult) Credits() bool {
	return r == MatchExact || r == MatchTypo
}

// Classify compares a submitted answer against a canonical one. Both sides
// are normalized first; an answer that normalizes to empty never matches
// anything, including an empty canonical.
func Classify(submitted, canonical string, caseSensitive bool) MatchResult {
	sub := normalize(submitted, caseSensitive)
	can := normalize(canonical, caseSensitive)

	if sub == "" {
		return MatchMismatch
	}
	if sub == can {
		return MatchExact
	}

	d := levenshtein(sub, can)
	switch {
	case d == 1:
		return MatchTypo
	case d == 2 && max(len([]rune(sub)), len([]rune(can))) > 5:
		return MatchTypo
	}
	return MatchMismatch
}

// normalize strips surrounding whitespace and punctuation and lowercases
// unless the question demands case sensitivity. Interior characters are
// untouched so multi-word answers keep their spacing.
func normalize(s string, caseSensitive bool) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	return s
}

// levenshtein computes the edit distance between two strings over runes,
// with unit cost for insert, delete and substitute. Single-row DP keeps the
// allocation proportional to the shorter comparison target.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min3(row[j]+1, row[j-1]+1, diag+cost)
			diag = row[j]
			row[j] = next
		}
	}
	return row[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
