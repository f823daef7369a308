package models

import "time"

// User is the minimal identity projection this service needs. Account
// management and authentication live in a separate service; requests arrive
// with an already-resolved user id.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:80;not null;uniqueIndex"`
	Email       string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	DisplayName string    `json:"display_name" gorm:"size:120"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
