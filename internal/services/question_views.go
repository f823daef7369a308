package services

import (
	"github.com/jeffholland/drillbuilder/internal/grading"
	"github.com/jeffholland/drillbuilder/internal/models"
)

// Learner-facing question views. These deliberately omit everything that
// gives the answer away: correctness flags, canonical and alternate answers,
// and the stored right-column order of word match pairs. Author-facing
// endpoints return the full model instead.

type LearnerQuestionView struct {
	ID             uint                `json:"id"`
	Type           models.QuestionType `json:"type"`
	PromptText     string              `json:"prompt_text"`
	PromptImageURL *string             `json:"prompt_image_url,omitempty"`
	Position       int                 `json:"position"`

	// multiple_choice
	AllowMultiple bool                `json:"allow_multiple,omitempty"`
	Options       []LearnerOptionView `json:"options,omitempty"`

	// cloze
	FullText *string            `json:"full_text,omitempty"`
	Blanks   []LearnerBlankView `json:"blanks,omitempty"`
	WordBank []string           `json:"word_bank,omitempty"`

	// word_match
	MatchType  models.MatchType      `json:"match_type,omitempty"`
	LeftItems  []LearnerPairSideView `json:"left_items,omitempty"`
	RightItems []LearnerPairSideView `json:"right_items,omitempty"`
}

type LearnerOptionView struct {
	Position int     `json:"position"`
	Text     string  `json:"text,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

type LearnerBlankView struct {
	Position     int  `json:"position"`
	CharPosition *int `json:"char_position,omitempty"`
}

type LearnerPairSideView struct {
	Position int     `json:"position"`
	Word     string  `json:"word,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// ToLearnerView projects a question for display. seed drives every shuffle
// so the same (attempt, question) pair always renders identically.
func ToLearnerView(q *models.Question, seed int64) LearnerQuestionView {
	view := LearnerQuestionView{
		ID:             q.ID,
		Type:           q.Type,
		PromptText:     q.PromptText,
		PromptImageURL: q.PromptImageURL,
		Position:       q.Position,
	}

	components := q.OrderedComponents()

	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		view.AllowMultiple = q.AllowMultiple
		view.Options = learnerOptions(components, q.RandomizeOrder, seed)

	case models.QuestionTypeCloze:
		view.FullText = q.FullText
		for i := range components {
			view.Blanks = append(view.Blanks, LearnerBlankView{
				Position:     components[i].Position,
				CharPosition: components[i].CharPosition,
			})
		}
		if q.ShowWordBank {
			view.WordBank = wordBank(components, seed)
		}

	case models.QuestionTypeWordMatch:
		view.MatchType = q.MatchType
		view.LeftItems, view.RightItems = learnerPairs(components, q.RandomizeRight, seed)
	}

	return view
}

func learnerOptions(components []models.AnswerComponent, randomize bool, seed int64) []LearnerOptionView {
	options := make([]LearnerOptionView, len(components))
	for i := range components {
		options[i] = LearnerOptionView{
			Position: components[i].Position,
			Text:     components[i].Text,
			ImageURL: components[i].ImageURL,
		}
	}
	if randomize {
		shuffled := make([]LearnerOptionView, len(options))
		for i, idx := range grading.ShuffleIndexes(len(options), seed) {
			shuffled[i] = options[idx]
		}
		return shuffled
	}
	return options
}

// wordBank lists every blank's canonical answer in shuffled order so the
// bank itself does not reveal which answer belongs to which blank.
func wordBank(components []models.AnswerComponent, seed int64) []string {
	bank := make([]string, 0, len(components))
	for _, idx := range grading.ShuffleIndexes(len(components), seed) {
		bank = append(bank, components[idx].CorrectAnswer)
	}
	return bank
}

// learnerPairs splits stored pairs into two columns. The left column keeps
// pair order; the right column is shuffled so pairing is the learner's job.
func learnerPairs(components []models.AnswerComponent, randomizeRight bool, seed int64) ([]LearnerPairSideView, []LearnerPairSideView) {
	left := make([]LearnerPairSideView, len(components))
	right := make([]LearnerPairSideView, len(components))
	for i := range components {
		left[i] = LearnerPairSideView{
			Position: components[i].Position,
			Word:     components[i].LeftWord,
			ImageURL: components[i].LeftImageURL,
		}
		right[i] = LearnerPairSideView{
			Position: components[i].Position,
			Word:     components[i].RightWord,
			ImageURL: components[i].RightImageURL,
		}
	}

	if randomizeRight {
		shuffled := make([]LearnerPairSideView, len(right))
		for i, idx := range grading.ShuffleIndexes(len(right), seed) {
			shuffled[i] = right[idx]
		}
		right = shuffled
	}
	return left, right
}
