package grading

import (
	"fmt"
	"sort"

	"github.com/jeffholland/drillbuilder/internal/models"
)

// multipleChoiceStrategy grades by set equality: the submitted option
// positions must match the correct-flagged positions exactly, with no
// partial credit. A bare scalar submission is treated as a one-element set.
type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) Grade(q *models.Question, response any) Outcome {
	selected, ok := selectedPositions(response)
	if !ok {
		return Outcome{Feedback: invalidResponseFeedback}
	}

	correct := make(map[int]struct{})
	for _, c := range q.Components {
		if c.IsCorrect {
			correct[c.Position] = struct{}{}
		}
	}

	match := len(selected) == len(correct)
	if match {
		for pos := range selected {
			if _, ok := correct[pos]; !ok {
				match = false
				break
			}
		}
	}

	positions := make([]int, 0, len(selected))
	for pos := range selected {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	details := map[string]any{"selected": positions}

	if match {
		return Outcome{IsCorrect: true, Feedback: "Correct!", Details: details}
	}
	return Outcome{
		Feedback: fmt.Sprintf("Incorrect. You selected %d option(s), but %d are correct.",
			len(selected), len(correct)),
		Details: details,
	}
}

// selectedPositions coerces the submission into a set of option positions.
// Accepted shapes: {"selected_options": [...]}, a bare list, or a bare
// scalar. nil reads as an empty selection.
func selectedPositions(response any) (map[int]struct{}, bool) {
	raw := unwrap(response, "selected_options")
	selected := make(map[int]struct{})

	switch v := raw.(type) {
	case nil:
		return selected, true
	case []any:
		for _, item := range v {
			pos, ok := asIndex(item)
			if !ok {
				return nil, false
			}
			selected[pos] = struct{}{}
		}
		return selected, true
	default:
		pos, ok := asIndex(v)
		if !ok {
			return nil, false
		}
		selected[pos] = struct{}{}
		return selected, true
	}
}
