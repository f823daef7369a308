package grading

import "github.com/jeffholland/drillbuilder/internal/models"

// ClassifyBlank grades one submitted string against a cloze blank's accepted
// answers. An exact match on any accepted form beats a typo match on any
// other, so the two passes run separately; each pass short-circuits on the
// first hit, canonical answer first.
func ClassifyBlank(submitted string, blank *models.AnswerComponent, caseSensitive bool) MatchResult {
	alts := blank.Alternates()
	accepted := make([]string, 0, 1+len(alts))
	accepted = append(accepted, blank.CorrectAnswer)
	accepted = append(accepted, alts...)

	for _, answer := range accepted {
		if Classify(submitted, answer, caseSensitive) == MatchExact {
			return MatchExact
		}
	}
	for _, answer := range accepted {
		if Classify(submitted, answer, caseSensitive) == MatchTypo {
			return MatchTypo
		}
	}
	return MatchMismatch
}
