package models

import (
	"time"
)

type UserAccount struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username       string    `gorm:"size:255;uniqueIndex" json:"username"`
	Password       string    `gorm:"size:255" json:"-"`
	Name           string    `gorm:"size:255" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone          string    `gorm:"size:255" json:"phone"`
	City           string    `gorm:"size:255" json:"city"`
	ProfilePicture string    `gorm:"size:255" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (UserAccount) TableName() string {
	return "user_account"
}
