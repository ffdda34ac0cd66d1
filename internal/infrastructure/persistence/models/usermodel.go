package models

import "time"

// UserModel is the persistence model for user accounts.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: usr_xxx"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"size:200"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;size:20;default:user"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}
