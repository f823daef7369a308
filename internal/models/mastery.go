package models

import "time"

// MasteryRecord tracks one user's spaced-repetition state for one question.
// Created lazily the first time the pair is graded.
type MasteryRecord struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	UserID     uint `json:"user_id" gorm:"not null;uniqueIndex:idx_mastery_user_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_mastery_user_question"`

	SuccessStreak  int        `json:"success_streak" gorm:"not null;default:0"`
	EaseFactor     float64    `json:"ease_factor" gorm:"not null;default:2.5"`
	IntervalDays   int        `json:"interval_days" gorm:"not null;default:0"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty" gorm:"type:date;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Question *Question `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
}

func (MasteryRecord) TableName() string {
	return "mastery_records"
}
