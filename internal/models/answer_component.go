package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ComponentType discriminates the answer-material variants. Each question
// variant owns exactly one component type.
type ComponentType string

const (
	ComponentTypeMCQOption     ComponentType = "mcq_option"
	ComponentTypeClozeBlank    ComponentType = "cloze_blank"
	ComponentTypeWordMatchPair ComponentType = "word_match_pair"
)

func (t ComponentType) IsValid() bool {
	switch t {
	case ComponentTypeMCQOption, ComponentTypeClozeBlank, ComponentTypeWordMatchPair:
		return true
	}
	return false
}

// ComponentTypeFor maps a question variant to the component variant it owns.
func ComponentTypeFor(qt QuestionType) ComponentType {
	switch qt {
	case QuestionTypeMultipleChoice:
		return ComponentTypeMCQOption
	case QuestionTypeCloze:
		return ComponentTypeClozeBlank
	case QuestionTypeWordMatch:
		return ComponentTypeWordMatchPair
	}
	return ""
}

// AnswerComponent is one piece of a question's answer material: an option, a
// blank, or a left/right pair. Position is zero-based within the owning
// question and is the index graded submissions refer to.
type AnswerComponent struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	QuestionID uint          `json:"question_id" gorm:"not null;index"`
	Type       ComponentType `json:"type" gorm:"column:component_type;size:32;not null"`
	Position   int           `json:"position" gorm:"not null;default:0"`

	// mcq_option
	Text      string  `json:"text,omitempty" gorm:"size:500"`
	ImageURL  *string `json:"image_url,omitempty" gorm:"size:500"`
	IsCorrect bool    `json:"is_correct,omitempty" gorm:"default:false"`

	// cloze_blank
	CorrectAnswer    string         `json:"correct_answer,omitempty" gorm:"size:200"`
	AlternateAnswers datatypes.JSON `json:"alternate_answers,omitempty" gorm:"type:jsonb"`
	CharPosition     *int           `json:"char_position,omitempty"`

	// word_match_pair
	LeftWord      string  `json:"left_word,omitempty" gorm:"size:200"`
	RightWord     string  `json:"right_word,omitempty" gorm:"size:200"`
	LeftImageURL  *string `json:"left_image_url,omitempty" gorm:"size:500"`
	RightImageURL *string `json:"right_image_url,omitempty" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AnswerComponent) TableName() string {
	return "answer_components"
}

// Alternates decodes the alternate-answers JSON column. A missing or
// malformed column reads as no alternates rather than an error; grading
// treats the canonical answer as the only acceptable form in that case.
func (c *AnswerComponent) Alternates() []string {
	if len(c.AlternateAnswers) == 0 {
		return nil
	}
	var alts []string
	if err := json.Unmarshal(c.AlternateAnswers, &alts); err != nil {
		return nil
	}
	return alts
}

// SetAlternates encodes the alternate answers into the JSON column.
func (c *AnswerComponent) SetAlternates(alts []string) error {
	data, err := json.Marshal(alts)
	if err != nil {
		return err
	}
	c.AlternateAnswers = datatypes.JSON(data)
	return nil
}
