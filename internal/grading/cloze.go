package grading

import (
	"fmt"
	"strconv"

	"github.com/jeffholland/drillbuilder/internal/models"
)

// clozeStrategy grades each blank independently and requires every blank to
// earn credit. Blanks are addressed by their position in component order,
// keyed "0", "1", ... in the submitted map; a missing key grades like an
// empty answer. Typos credit the blank but are counted separately so the
// feedback can call them out.
type clozeStrategy struct{}

func (clozeStrategy) Grade(q *models.Question, response any) Outcome {
	answers, ok := clozeAnswers(response)
	if !ok {
		return Outcome{Feedback: invalidResponseFeedback}
	}

	blanks := q.OrderedComponents()
	details := make(map[string]any, len(blanks))
	correct, typos := 0, 0

	for i := range blanks {
		key := strconv.Itoa(i)
		submitted := answers[key]

		result := ClassifyBlank(submitted, &blanks[i], q.CaseSensitive)
		switch result {
		case MatchExact:
			correct++
		case MatchTypo:
			correct++
			typos++
		}

		details[key] = map[string]any{
			"result":    string(result),
			"submitted": submitted,
			"canonical": blanks[i].CorrectAnswer,
		}
	}

	feedback := fmt.Sprintf("Got %d out of %d blanks correct.", correct, len(blanks))
	if typos > 0 {
		feedback += fmt.Sprintf(" (%d with minor typos).", typos)
	}

	return Outcome{
		IsCorrect: correct == len(blanks),
		Feedback:  feedback,
		Details:   details,
	}
}

// clozeAnswers coerces the submission into blank-key -> answer text.
// Accepted shapes: {"answers": {...}} or a bare map. Non-string values read
// as empty answers for their blank.
func clozeAnswers(response any) (map[string]string, bool) {
	raw, ok := unwrap(response, "answers").(map[string]any)
	if !ok {
		return nil, false
	}
	answers := make(map[string]string, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			answers[key] = s
		}
	}
	return answers, true
}
