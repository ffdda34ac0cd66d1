package models

import "time"

// SubscriptionHistoryModel stores append-only lifecycle snapshots. Rows are
// inserted on create, cancel, and expire and never updated.
type SubscriptionHistoryModel struct {
	ID             uint   `gorm:"primarykey"`
	UserID         uint   `gorm:"not null;index:idx_history_user"`
	SubscriptionID uint   `gorm:"not null;index:idx_history_subscription"`
	PlanName       string `gorm:"not null;size:200"`
	PlanTier       string `gorm:"not null;size:20"`
	Status         string `gorm:"not null;size:20"`
	CreatedAt      time.Time
}

func (SubscriptionHistoryModel) TableName() string {
	return "subscription_history"
}
