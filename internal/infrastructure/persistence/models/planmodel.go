package models

import "time"

// PlanModel is the persistence model for plans. This is the anti-corruption
// layer between domain and database.
type PlanModel struct {
	ID            uint   `gorm:"primarykey"`
	SID           string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: plan_xxx"`
	Name          string `gorm:"uniqueIndex;not null;size:100"`
	DisplayName   string `gorm:"not null;size:200"`
	TierCategory  string `gorm:"not null;size:20"`
	DurationDays  int    `gorm:"not null"`
	StandardQuota int    `gorm:"not null;default:0"`
	PremiumQuota  int    `gorm:"not null;default:0"`
	PriceCents    int64  `gorm:"not null;default:0"`
	Status        string `gorm:"not null;size:20;index:idx_plan_status"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlanModel) TableName() string {
	return "plans"
}
