package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffholland/drillbuilder/internal/models"
)

func mcqQuestion(correct ...int) *models.Question {
	q := &models.Question{Type: models.QuestionTypeMultipleChoice}
	correctSet := make(map[int]bool, len(correct))
	for _, pos := range correct {
		correctSet[pos] = true
	}
	for pos := 0; pos < 4; pos++ {
		q.Components = append(q.Components, models.AnswerComponent{
			Type:      models.ComponentTypeMCQOption,
			Position:  pos,
			Text:      "option",
			IsCorrect: correctSet[pos],
		})
	}
	return q
}

func clozeQuestion(caseSensitive bool, canonicals ...string) *models.Question {
	q := &models.Question{
		Type:          models.QuestionTypeCloze,
		CaseSensitive: caseSensitive,
	}
	for pos, answer := range canonicals {
		q.Components = append(q.Components, models.AnswerComponent{
			Type:          models.ComponentTypeClozeBlank,
			Position:      pos,
			CorrectAnswer: answer,
		})
	}
	return q
}

func wordMatchQuestion(pairs int) *models.Question {
	q := &models.Question{Type: models.QuestionTypeWordMatch, MatchType: models.MatchTypeWordToWord}
	for pos := 0; pos < pairs; pos++ {
		q.Components = append(q.Components, models.AnswerComponent{
			Type:     models.ComponentTypeWordMatchPair,
			Position: pos,
			LeftWord: "left", RightWord: "right",
		})
	}
	return q
}

func TestGrade_UnknownType(t *testing.T) {
	q := &models.Question{Type: "drag_and_drop"}

	_, err := Grade(q, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownQuestionType)
}

func TestGrade_NoComponents(t *testing.T) {
	for _, qt := range []models.QuestionType{
		models.QuestionTypeMultipleChoice,
		models.QuestionTypeCloze,
		models.QuestionTypeWordMatch,
	} {
		q := &models.Question{Type: qt}
		outcome, err := Grade(q, map[string]any{})

		require.NoError(t, err, "type %s", qt)
		assert.False(t, outcome.IsCorrect, "type %s", qt)
	}
}

func TestGrade_MultipleChoice(t *testing.T) {
	tests := []struct {
		name         string
		question     *models.Question
		response     any
		wantCorrect  bool
		wantFeedback string
	}{
		{
			name:         "exact set",
			question:     mcqQuestion(1, 3),
			response:     map[string]any{"selected_options": []any{float64(1), float64(3)}},
			wantCorrect:  true,
			wantFeedback: "Correct!",
		},
		{
			name:         "subset is not enough",
			question:     mcqQuestion(1, 3),
			response:     []any{float64(1)},
			wantCorrect:  false,
			wantFeedback: "Incorrect. You selected 1 option(s), but 2 are correct.",
		},
		{
			name:        "superset fails",
			question:    mcqQuestion(1),
			response:    []any{float64(0), float64(1)},
			wantCorrect: false,
		},
		{
			name:        "scalar coerced to set",
			question:    mcqQuestion(2),
			response:    float64(2),
			wantCorrect: true,
		},
		{
			name:        "string indexes accepted",
			question:    mcqQuestion(1, 3),
			response:    []any{"1", "3"},
			wantCorrect: true,
		},
		{
			name:        "duplicates collapse",
			question:    mcqQuestion(1),
			response:    []any{float64(1), float64(1)},
			wantCorrect: true,
		},
		{
			name:        "wrong option",
			question:    mcqQuestion(1),
			response:    []any{float64(2)},
			wantCorrect: false,
		},
		{
			name:         "garbage response",
			question:     mcqQuestion(1),
			response:     "first one",
			wantCorrect:  false,
			wantFeedback: "Invalid response format",
		},
		{
			name:        "nil response is empty selection",
			question:    mcqQuestion(1),
			response:    nil,
			wantCorrect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Grade(tt.question, tt.response)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, outcome.IsCorrect)
			if tt.wantFeedback != "" {
				assert.Equal(t, tt.wantFeedback, outcome.Feedback)
			}
		})
	}
}

func TestGrade_Cloze(t *testing.T) {
	q := clozeQuestion(false, "perro", "gato")

	t.Run("all exact", func(t *testing.T) {
		outcome, err := Grade(q, map[string]any{
			"answers": map[string]any{"0": "perro", "1": "gato"},
		})

		require.NoError(t, err)
		assert.True(t, outcome.IsCorrect)
		assert.Equal(t, "Got 2 out of 2 blanks correct.", outcome.Feedback)
	})

	t.Run("typo still credits and is reported", func(t *testing.T) {
		outcome, err := Grade(q, map[string]any{"0": "pero", "1": "gato"})

		require.NoError(t, err)
		assert.True(t, outcome.IsCorrect)
		assert.Equal(t, "Got 2 out of 2 blanks correct. (1 with minor typos).", outcome.Feedback)

		detail, ok := outcome.Details["0"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "typo", detail["result"])
		assert.Equal(t, "pero", detail["submitted"])
		assert.Equal(t, "perro", detail["canonical"])
	})

	t.Run("missing blank grades as mismatch", func(t *testing.T) {
		outcome, err := Grade(q, map[string]any{"answers": map[string]any{"0": "perro"}})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Got 1 out of 2 blanks correct.", outcome.Feedback)

		detail, ok := outcome.Details["1"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "mismatch", detail["result"])
	})

	t.Run("non string blank value reads as empty", func(t *testing.T) {
		outcome, err := Grade(q, map[string]any{"0": float64(3), "1": "gato"})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
	})

	t.Run("non map response", func(t *testing.T) {
		outcome, err := Grade(q, []any{"perro", "gato"})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Invalid response format", outcome.Feedback)
	})

	t.Run("blanks follow position order not storage order", func(t *testing.T) {
		shuffled := clozeQuestion(false, "gato", "perro")
		shuffled.Components[0].Position = 1
		shuffled.Components[1].Position = 0

		outcome, err := Grade(shuffled, map[string]any{"0": "perro", "1": "gato"})

		require.NoError(t, err)
		assert.True(t, outcome.IsCorrect)
	})
}

func TestGrade_WordMatch(t *testing.T) {
	q := wordMatchQuestion(3)

	pair := func(left, right any) map[string]any {
		return map[string]any{"left": left, "right": right}
	}

	t.Run("all matched", func(t *testing.T) {
		outcome, err := Grade(q, map[string]any{"pairs": []any{
			pair("0", "0"), pair("1", "1"), pair("2", "2"),
		}})

		require.NoError(t, err)
		assert.True(t, outcome.IsCorrect)
		assert.Equal(t, "Got 3 out of 3 pairs correct.", outcome.Feedback)
	})

	t.Run("numeric indexes accepted", func(t *testing.T) {
		outcome, err := Grade(q, []any{
			pair(float64(0), float64(0)), pair(float64(1), float64(1)), pair(float64(2), float64(2)),
		})

		require.NoError(t, err)
		assert.True(t, outcome.IsCorrect)
	})

	t.Run("crossed pairing counts only matches", func(t *testing.T) {
		outcome, err := Grade(q, []any{
			pair("0", "0"), pair("1", "2"), pair("2", "1"),
		})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Got 1 out of 3 pairs correct.", outcome.Feedback)
	})

	t.Run("unparseable pairs are skipped", func(t *testing.T) {
		outcome, err := Grade(q, []any{
			pair("zero", "0"), pair("1", "1"), pair("2", "2"),
		})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Got 2 out of 3 pairs correct.", outcome.Feedback)
	})

	t.Run("duplicate correct pair counted once", func(t *testing.T) {
		outcome, err := Grade(q, []any{
			pair("0", "0"), pair("0", "0"), pair("1", "1"),
		})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Got 2 out of 3 pairs correct.", outcome.Feedback)
	})

	t.Run("negative index never matches", func(t *testing.T) {
		outcome, err := Grade(q, []any{pair("-1", "-1")})

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Got 0 out of 3 pairs correct.", outcome.Feedback)
	})

	t.Run("non list response", func(t *testing.T) {
		outcome, err := Grade(q, "0=0,1=1,2=2")

		require.NoError(t, err)
		assert.False(t, outcome.IsCorrect)
		assert.Equal(t, "Invalid response format", outcome.Feedback)
	})
}

// Grading must survive arbitrary decoded JSON without panicking or erroring
// for any registered question type.
func TestGrade_NeverPanicsOnJunk(t *testing.T) {
	questions := []*models.Question{
		mcqQuestion(0),
		clozeQuestion(true, "one"),
		wordMatchQuestion(2),
	}
	junk := []any{
		nil,
		true,
		float64(3.7),
		"plain text",
		[]any{nil, true, []any{}},
		map[string]any{"answers": []any{"wrong shape"}},
		map[string]any{"pairs": map[string]any{"left": "0"}},
		map[string]any{"selected_options": map[string]any{}},
		map[string]any{"pairs": []any{map[string]any{}}},
	}

	for _, q := range questions {
		for _, payload := range junk {
			outcome, err := Grade(q, payload)

			require.NoError(t, err, "type %s payload %#v", q.Type, payload)
			assert.False(t, outcome.IsCorrect, "type %s payload %#v", q.Type, payload)
			assert.NotEmpty(t, outcome.Feedback, "type %s payload %#v", q.Type, payload)
		}
	}
}
