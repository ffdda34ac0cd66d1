package models

import "time"

// DownloadEventModel is the persistence model for the download ledger. Rows
// are append-only; there is no UpdatedAt on purpose.
type DownloadEventModel struct {
	ID             uint      `gorm:"primarykey"`
	SID            string    `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: dl_xxx"`
	UserID         uint      `gorm:"not null;index:idx_download_user"`
	SubscriptionID uint      `gorm:"not null;index:idx_download_subscription"`
	AssetID        uint      `gorm:"not null;index:idx_download_asset"`
	AssetSID       string    `gorm:"not null;size:50"`
	Tier           string    `gorm:"not null;size:20"`
	DownloadedAt   time.Time `gorm:"not null;index:idx_downloaded_at"`
}

func (DownloadEventModel) TableName() string {
	return "download_events"
}
