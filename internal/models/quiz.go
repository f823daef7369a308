package models

import "time"

// Language is a reference row for the language a quiz drills.
type Language struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:16;not null;uniqueIndex"`
	Name string `json:"name" gorm:"size:80;not null"`
}

func (Language) TableName() string {
	return "languages"
}

// Quiz is an ordered collection of questions authored by one user.
type Quiz struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	CreatorID   uint    `json:"creator_id" gorm:"not null;index"`
	Title       string  `json:"title" gorm:"size:200;not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	LanguageID  *uint   `json:"language_id,omitempty" gorm:"index"`
	IsPublic    bool    `json:"is_public" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Creator   *User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Language  *Language  `json:"language,omitempty" gorm:"foreignKey:LanguageID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// SavedQuiz marks a quiz a user bookmarked for later practice.
type SavedQuiz struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_saved_user_quiz"`
	QuizID    uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_saved_user_quiz"`
	CreatedAt time.Time `json:"created_at"`

	Quiz *Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (SavedQuiz) TableName() string {
	return "saved_quizzes"
}
