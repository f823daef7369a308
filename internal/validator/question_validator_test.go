package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffholland/drillbuilder/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validMCQ() *models.Question {
	return &models.Question{
		Type:       models.QuestionTypeMultipleChoice,
		PromptText: "Which of these is a fruit?",
		Components: []models.AnswerComponent{
			{Type: models.ComponentTypeMCQOption, Position: 0, Text: "Apple", IsCorrect: true},
			{Type: models.ComponentTypeMCQOption, Position: 1, Text: "Chair"},
			{Type: models.ComponentTypeMCQOption, Position: 2, Text: "Spoon"},
		},
	}
}

func validCloze() *models.Question {
	return &models.Question{
		Type:       models.QuestionTypeCloze,
		PromptText: "Fill in the blanks.",
		FullText:   strPtr("The ___ sat on the ___."),
		Components: []models.AnswerComponent{
			{Type: models.ComponentTypeClozeBlank, Position: 0, CorrectAnswer: "cat", CharPosition: intPtr(4)},
			{Type: models.ComponentTypeClozeBlank, Position: 1, CorrectAnswer: "mat", CharPosition: intPtr(19)},
		},
	}
}

func validWordMatch() *models.Question {
	return &models.Question{
		Type:       models.QuestionTypeWordMatch,
		PromptText: "Match the words to their translations.",
		MatchType:  models.MatchTypeWordToWord,
		Components: []models.AnswerComponent{
			{Type: models.ComponentTypeWordMatchPair, Position: 0, LeftWord: "dog", RightWord: "perro"},
			{Type: models.ComponentTypeWordMatchPair, Position: 1, LeftWord: "cat", RightWord: "gato"},
		},
	}
}

func TestValidateQuestion_ValidVariants(t *testing.T) {
	v := NewQuestionValidator()

	assert.NoError(t, v.ValidateQuestion(validMCQ()))
	assert.NoError(t, v.ValidateQuestion(validCloze()))
	assert.NoError(t, v.ValidateQuestion(validWordMatch()))
}

func TestValidateQuestion_BasicFields(t *testing.T) {
	v := NewQuestionValidator()

	q := validMCQ()
	q.PromptText = ""
	assert.ErrorContains(t, v.ValidateQuestion(q), "prompt text")

	q = validMCQ()
	q.Type = "essay"
	assert.ErrorContains(t, v.ValidateQuestion(q), "unsupported question type")
}

func TestValidateQuestion_Positions(t *testing.T) {
	v := NewQuestionValidator()

	q := validMCQ()
	q.Components[1].Position = 0
	assert.ErrorContains(t, v.ValidateQuestion(q), "duplicate component position")

	q = validMCQ()
	q.Components[2].Position = 7
	assert.ErrorContains(t, v.ValidateQuestion(q), "out of range")

	q = validMCQ()
	q.Components[0].Position = -1
	assert.ErrorContains(t, v.ValidateQuestion(q), "out of range")
}

func TestValidateQuestion_ComponentTypeMismatch(t *testing.T) {
	v := NewQuestionValidator()

	q := validMCQ()
	q.Components[1].Type = models.ComponentTypeClozeBlank
	assert.ErrorContains(t, v.ValidateQuestion(q), "expected mcq_option")
}

func TestValidateMultipleChoice(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("too few options", func(t *testing.T) {
		q := validMCQ()
		q.Components = q.Components[:1]
		assert.ErrorContains(t, v.ValidateQuestion(q), "at least 2 options")
	})

	t.Run("too many options", func(t *testing.T) {
		q := validMCQ()
		q.Components = nil
		for i := 0; i < 11; i++ {
			q.Components = append(q.Components, models.AnswerComponent{
				Type: models.ComponentTypeMCQOption, Position: i, Text: "option", IsCorrect: i == 0,
			})
		}
		assert.ErrorContains(t, v.ValidateQuestion(q), "more than 10 options")
	})

	t.Run("no correct option", func(t *testing.T) {
		q := validMCQ()
		q.Components[0].IsCorrect = false
		assert.ErrorContains(t, v.ValidateQuestion(q), "at least 1 correct option")
	})

	t.Run("multiple correct without allow_multiple", func(t *testing.T) {
		q := validMCQ()
		q.Components[1].IsCorrect = true
		assert.ErrorContains(t, v.ValidateQuestion(q), "allow_multiple")

		q.AllowMultiple = true
		assert.NoError(t, v.ValidateQuestion(q))
	})

	t.Run("option without text or image", func(t *testing.T) {
		q := validMCQ()
		q.Components[2].Text = ""
		assert.ErrorContains(t, v.ValidateQuestion(q), "needs text or an image")

		q.Components[2].ImageURL = strPtr("https://example.com/spoon.png")
		assert.NoError(t, v.ValidateQuestion(q))
	})
}

func TestValidateCloze(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("missing full text", func(t *testing.T) {
		q := validCloze()
		q.FullText = nil
		assert.ErrorContains(t, v.ValidateQuestion(q), "full text")

		q.FullText = strPtr("")
		assert.ErrorContains(t, v.ValidateQuestion(q), "full text")
	})

	t.Run("no blanks", func(t *testing.T) {
		q := validCloze()
		q.Components = nil
		assert.ErrorContains(t, v.ValidateQuestion(q), "at least 1 blank")
	})

	t.Run("blank without answer", func(t *testing.T) {
		q := validCloze()
		q.Components[1].CorrectAnswer = ""
		assert.ErrorContains(t, v.ValidateQuestion(q), "correct answer")
	})

	t.Run("empty alternate", func(t *testing.T) {
		q := validCloze()
		require.NoError(t, q.Components[0].SetAlternates([]string{"kitten", ""}))
		assert.ErrorContains(t, v.ValidateQuestion(q), "alternate")
	})

	t.Run("negative char position", func(t *testing.T) {
		q := validCloze()
		q.Components[0].CharPosition = intPtr(-3)
		assert.ErrorContains(t, v.ValidateQuestion(q), "char position")
	})
}

func TestValidateWordMatch(t *testing.T) {
	v := NewQuestionValidator()

	t.Run("invalid match type", func(t *testing.T) {
		q := validWordMatch()
		q.MatchType = "word_to_sound"
		assert.ErrorContains(t, v.ValidateQuestion(q), "unsupported match type")
	})

	t.Run("too few pairs", func(t *testing.T) {
		q := validWordMatch()
		q.Components = q.Components[:1]
		assert.ErrorContains(t, v.ValidateQuestion(q), "at least 2 pairs")
	})

	t.Run("missing left side", func(t *testing.T) {
		q := validWordMatch()
		q.Components[0].LeftWord = ""
		assert.ErrorContains(t, v.ValidateQuestion(q), "left word or image")
	})

	t.Run("missing right word", func(t *testing.T) {
		q := validWordMatch()
		q.Components[1].RightWord = ""
		assert.ErrorContains(t, v.ValidateQuestion(q), "right word")
	})

	t.Run("image match requires right images", func(t *testing.T) {
		q := validWordMatch()
		q.MatchType = models.MatchTypeWordToImage
		assert.ErrorContains(t, v.ValidateQuestion(q), "right image")

		for i := range q.Components {
			q.Components[i].RightImageURL = strPtr("https://example.com/img.png")
			q.Components[i].RightWord = ""
		}
		assert.NoError(t, v.ValidateQuestion(q))
	})
}

func TestValidateBatch(t *testing.T) {
	v := NewQuestionValidator()

	assert.ErrorContains(t, v.ValidateBatch(nil), "cannot be empty")

	bad := validMCQ()
	bad.PromptText = ""
	err := v.ValidateBatch([]*models.Question{validMCQ(), bad})
	assert.ErrorContains(t, err, "question 2")

	assert.NoError(t, v.ValidateBatch([]*models.Question{validMCQ(), validCloze()}))
}
