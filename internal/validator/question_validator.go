package validator

import (
	"fmt"

	"github.com/jeffholland/drillbuilder/internal/models"
)

const (
	minOptions = 2
	maxOptions = 10
	minPairs   = 2
	maxPairs   = 10
)

// QuestionValidator checks authoring-side consistency of a question and its
// answer components per variant. Grading assumes these rules hold.
type QuestionValidator struct{}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateQuestion validates a complete question with its components.
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question.PromptText == "" {
		return fmt.Errorf("prompt text is required")
	}
	if !question.Type.IsValid() {
		return fmt.Errorf("unsupported question type: %s", question.Type)
	}

	if err := v.validatePositions(question.Components); err != nil {
		return err
	}

	expected := models.ComponentTypeFor(question.Type)
	for i := range question.Components {
		if question.Components[i].Type != expected {
			return fmt.Errorf("component %d has type %s, expected %s",
				i, question.Components[i].Type, expected)
		}
	}

	switch question.Type {
	case models.QuestionTypeMultipleChoice:
		return v.validateMultipleChoice(question)
	case models.QuestionTypeCloze:
		return v.validateCloze(question)
	case models.QuestionTypeWordMatch:
		return v.validateWordMatch(question)
	}
	return nil
}

// ValidateBatch validates multiple questions
func (v *QuestionValidator) ValidateBatch(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question batch cannot be empty")
	}

	for i, question := range questions {
		if err := v.ValidateQuestion(question); err != nil {
			return fmt.Errorf("validation failed for question %d: %w", i+1, err)
		}
	}

	return nil
}

// validatePositions requires components to occupy positions 0..n-1 with no
// duplicates, since graded submissions address components by position.
func (v *QuestionValidator) validatePositions(components []models.AnswerComponent) error {
	seen := make(map[int]bool, len(components))
	for _, c := range components {
		if c.Position < 0 || c.Position >= len(components) {
			return fmt.Errorf("component position %d out of range", c.Position)
		}
		if seen[c.Position] {
			return fmt.Errorf("duplicate component position %d", c.Position)
		}
		seen[c.Position] = true
	}
	return nil
}

func (v *QuestionValidator) validateMultipleChoice(question *models.Question) error {
	options := question.Components
	if len(options) < minOptions {
		return fmt.Errorf("must have at least %d options", minOptions)
	}
	if len(options) > maxOptions {
		return fmt.Errorf("cannot have more than %d options", maxOptions)
	}

	correctCount := 0
	for i := range options {
		if options[i].Text == "" && options[i].ImageURL == nil {
			return fmt.Errorf("option %d needs text or an image", i)
		}
		if options[i].IsCorrect {
			correctCount++
		}
	}

	if correctCount == 0 {
		return fmt.Errorf("must have at least 1 correct option")
	}
	if correctCount > 1 && !question.AllowMultiple {
		return fmt.Errorf("multiple correct options require allow_multiple to be true")
	}

	return nil
}

func (v *QuestionValidator) validateCloze(question *models.Question) error {
	if question.FullText == nil || *question.FullText == "" {
		return fmt.Errorf("full text is required for cloze questions")
	}
	if len(question.Components) == 0 {
		return fmt.Errorf("must have at least 1 blank")
	}

	for i := range question.Components {
		blank := &question.Components[i]
		if blank.CorrectAnswer == "" {
			return fmt.Errorf("blank %d must have a correct answer", i)
		}
		for j, alt := range blank.Alternates() {
			if alt == "" {
				return fmt.Errorf("blank %d alternate %d cannot be empty", i, j)
			}
		}
		if blank.CharPosition != nil && *blank.CharPosition < 0 {
			return fmt.Errorf("blank %d char position cannot be negative", i)
		}
	}

	return nil
}

func (v *QuestionValidator) validateWordMatch(question *models.Question) error {
	if !question.MatchType.IsValid() {
		return fmt.Errorf("unsupported match type: %s", question.MatchType)
	}

	pairs := question.Components
	if len(pairs) < minPairs {
		return fmt.Errorf("must have at least %d pairs", minPairs)
	}
	if len(pairs) > maxPairs {
		return fmt.Errorf("cannot have more than %d pairs", maxPairs)
	}

	for i := range pairs {
		pair := &pairs[i]
		if pair.LeftWord == "" && pair.LeftImageURL == nil {
			return fmt.Errorf("pair %d needs a left word or image", i)
		}
		if question.MatchType == models.MatchTypeWordToImage {
			if pair.RightImageURL == nil {
				return fmt.Errorf("pair %d needs a right image", i)
			}
			continue
		}
		if pair.RightWord == "" {
			return fmt.Errorf("pair %d needs a right word", i)
		}
	}

	return nil
}
