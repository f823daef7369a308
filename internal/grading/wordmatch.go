package grading

import (
	"fmt"

	"github.com/jeffholland/drillbuilder/internal/models"
)

// wordMatchStrategy grades a list of {left, right} pairings. Components are
// stored as already-matched pairs, so a submitted pairing is correct exactly
// when both sides name the same non-negative pair position. The display
// layer shuffles the right column; grading sees only the stable positions.
type wordMatchStrategy struct{}

func (wordMatchStrategy) Grade(q *models.Question, response any) Outcome {
	pairs, ok := submittedPairs(response)
	if !ok {
		return Outcome{Feedback: invalidResponseFeedback}
	}

	total := len(q.Components)
	matched := make(map[int]struct{})
	for _, p := range pairs {
		left, okL := asIndex(p.left)
		right, okR := asIndex(p.right)
		if !okL || !okR {
			continue
		}
		if left >= 0 && left == right {
			matched[left] = struct{}{}
		}
	}

	correct := len(matched)
	return Outcome{
		IsCorrect: correct == total,
		Feedback:  fmt.Sprintf("Got %d out of %d pairs correct.", correct, total),
		Details:   map[string]any{"matched": correct, "total": total},
	}
}

type rawPair struct {
	left, right any
}

// submittedPairs coerces the submission into raw pair entries. Accepted
// shapes: {"pairs": [...]} or a bare list of {"left": ..., "right": ...}
// objects. Entries that are not objects are dropped silently; anything that
// is not a list at all is a format error.
func submittedPairs(response any) ([]rawPair, bool) {
	raw, ok := unwrap(response, "pairs").([]any)
	if !ok {
		return nil, false
	}
	pairs := make([]rawPair, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		pairs = append(pairs, rawPair{left: entry["left"], right: entry["right"]})
	}
	return pairs, true
}
