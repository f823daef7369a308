package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt is one user's run through a quiz. Score is the fraction of
// questions answered correctly, filled in when the attempt completes.
type QuizAttempt struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	QuizID uint `json:"quiz_id" gorm:"not null;index"`

	StartedAt   time.Time  `json:"started_at" gorm:"not null"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quiz    *Quiz        `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Answers []UserAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}

// UserAnswer records one graded submission inside an attempt. Response keeps
// the raw submitted payload; Details keeps the per-part grading breakdown.
type UserAnswer struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	AttemptID  uint `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`

	Response   datatypes.JSON `json:"response" gorm:"type:jsonb"`
	WasCorrect bool           `json:"was_correct" gorm:"not null;default:false"`
	Feedback   string         `json:"feedback" gorm:"type:text"`
	Details    datatypes.JSON `json:"details,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`

	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
