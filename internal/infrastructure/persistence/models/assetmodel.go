package models

import "time"

// AssetModel is the persistence model for catalog assets.
type AssetModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ast_xxx"`
	Title     string `gorm:"not null;size:500"`
	Tier      string `gorm:"not null;size:20;index:idx_asset_tier"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (AssetModel) TableName() string {
	return "assets"
}
