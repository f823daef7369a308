package models

import (
	"sort"
	"time"
)

// QuestionType discriminates the question variants. Grading, validation and
// serialization all dispatch on it; adding a variant means adding a strategy,
// not editing a shared switch.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeCloze          QuestionType = "cloze"
	QuestionTypeWordMatch      QuestionType = "word_match"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeCloze, QuestionTypeWordMatch:
		return true
	}
	return false
}

// MatchType describes what the right column of a word_match question holds.
type MatchType string

const (
	MatchTypeWordToWord       MatchType = "word_to_word"
	MatchTypeWordToDefinition MatchType = "word_to_definition"
	MatchTypeWordToImage      MatchType = "word_to_image"
)

func (t MatchType) IsValid() bool {
	switch t {
	case MatchTypeWordToWord, MatchTypeWordToDefinition, MatchTypeWordToImage:
		return true
	}
	return false
}

// Question is a single drill item inside a quiz. Variant-specific settings
// live in nullable columns gated by Type; the answer material itself lives in
// the question's ordered Components.
type Question struct {
	ID     uint         `json:"id" gorm:"primaryKey"`
	QuizID uint         `json:"quiz_id" gorm:"not null;index"`
	Type   QuestionType `json:"type" gorm:"size:32;not null;index"`

	PromptText        string  `json:"prompt_text" gorm:"type:text;not null"`
	PromptImageURL    *string `json:"prompt_image_url,omitempty" gorm:"size:500"`
	AnswerExplanation *string `json:"answer_explanation,omitempty" gorm:"type:text"`
	Position          int     `json:"position" gorm:"not null;default:0"`

	// multiple_choice settings
	AllowMultiple  bool `json:"allow_multiple,omitempty" gorm:"default:false"`
	RandomizeOrder bool `json:"randomize_order,omitempty" gorm:"default:false"`

	// cloze settings
	FullText      *string `json:"full_text,omitempty" gorm:"type:text"`
	ShowWordBank  bool    `json:"show_word_bank,omitempty" gorm:"default:false"`
	CaseSensitive bool    `json:"case_sensitive,omitempty" gorm:"default:false"`

	// word_match settings
	MatchType      MatchType `json:"match_type,omitempty" gorm:"size:32"`
	RandomizeRight bool      `json:"randomize_right,omitempty" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Quiz       *Quiz             `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Components []AnswerComponent `json:"components,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string {
	return "questions"
}

// OrderedComponents returns the components sorted by position without
// mutating the loaded slice. Position is the stable identity graded answers
// refer to, so callers must never rely on database row order.
func (q *Question) OrderedComponents() []AnswerComponent {
	out := make([]AnswerComponent, len(q.Components))
	copy(out, q.Components)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
