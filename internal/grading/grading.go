package grading

import (
	"errors"
	"fmt"

	"github.com/jeffholland/drillbuilder/internal/models"
)

// ErrUnknownQuestionType is returned when a question's type has no
// registered strategy. It is the only error grading can produce; every
// malformed submission degrades to an incorrect Outcome instead.
var ErrUnknownQuestionType = errors.New("unknown question type")

const invalidResponseFeedback = "Invalid response format"

// Outcome is the verdict for one graded submission. Details carries the
// per-part breakdown (per blank, per pair) keyed by component position.
type Outcome struct {
	IsCorrect bool           `json:"is_correct"`
	Feedback  string         `json:"feedback"`
	Details   map[string]any `json:"details,omitempty"`
}

// Strategy grades submissions for one question variant. Implementations
// never return errors and never panic on user input; the raw decoded JSON
// payload is inspected defensively and any unusable shape grades incorrect.
type Strategy interface {
	Grade(q *models.Question, response any) Outcome
}

var strategies = map[models.QuestionType]Strategy{
	models.QuestionTypeMultipleChoice: multipleChoiceStrategy{},
	models.QuestionTypeCloze:          clozeStrategy{},
	models.QuestionTypeWordMatch:      wordMatchStrategy{},
}

// Grade dispatches to the strategy registered for the question's type.
// A question with no answer components grades incorrect without consulting
// the strategy, so an empty MCQ cannot be "solved" with an empty selection.
func Grade(q *models.Question, response any) (Outcome, error) {
	strategy, ok := strategies[q.Type]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, q.Type)
	}
	if len(q.Components) == 0 {
		return Outcome{Feedback: "This question has no answer material."}, nil
	}
	return strategy.Grade(q, response), nil
}
