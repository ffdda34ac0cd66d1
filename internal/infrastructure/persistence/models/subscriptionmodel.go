package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionModel is the persistence model for subscriptions. Quota totals
// are snapshotted from the plan at creation; the used counters only move
// through guarded conditional updates.
type SubscriptionModel struct {
	ID            uint      `gorm:"primarykey"`
	SID           string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UserID        uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID        uint      `gorm:"not null;index:idx_plan_subscription"`
	PlanName      string    `gorm:"not null;size:200"`
	PlanTier      string    `gorm:"not null;size:20"`
	Status        string    `gorm:"not null;size:20;index:idx_status"`
	StartDate     time.Time `gorm:"not null"`
	EndDate       time.Time `gorm:"not null;index:idx_end_date"`
	StandardTotal int       `gorm:"not null;default:0"`
	StandardUsed  int       `gorm:"not null;default:0"`
	PremiumTotal  int       `gorm:"not null;default:0"`
	PremiumUsed   int       `gorm:"not null;default:0"`
	AmountCents   int64     `gorm:"not null;default:0"`
	CancelledAt   *time.Time
	CancelReason  *string `gorm:"size:500"`
	Version       int     `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
