package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tessera/internal/domain/download"
	"tessera/internal/infrastructure/persistence/mappers"
	"tessera/internal/infrastructure/persistence/models"
	"tessera/internal/shared/logger"
)

// DownloadLedger implements download.Ledger using GORM. Record runs the
// guarded quota decrement and the event insert in one transaction, so a
// ledger row exists exactly when its debit committed.
type DownloadLedger struct {
	db     *gorm.DB
	mapper mappers.DownloadEventMapper
	logger logger.Interface
}

func NewDownloadLedger(db *gorm.DB) download.Ledger {
	return &DownloadLedger{
		db:     db,
		mapper: mappers.NewDownloadEventMapper(),
		logger: logger.NewLogger().With("component", "repository.downloadledger"),
	}
}

func (r *DownloadLedger) Record(ctx context.Context, event *download.Event) error {
	model, err := r.mapper.ToModel(event)
	if err != nil {
		return fmt.Errorf("failed to map download event: %w", err)
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitQuota(tx, event.SubscriptionID(), event.Tier(), 1, event.DownloadedAt()); err != nil {
			return err
		}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to append download event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := event.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set event ID: %w", err)
	}
	return nil
}

func (r *DownloadLedger) ListByUserID(ctx context.Context, userID uint, limit int) ([]*download.Event, error) {
	var eventModels []*models.DownloadEventModel
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("downloaded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list download events: %w", err)
	}
	return r.mapper.ToEntities(eventModels)
}

func (r *DownloadLedger) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DownloadEventModel{}).
		Where("downloaded_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count download events: %w", err)
	}
	return count, nil
}

func (r *DownloadLedger) CountBySubscriptionID(ctx context.Context, subscriptionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DownloadEventModel{}).
		Where("subscription_id = ?", subscriptionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count download events: %w", err)
	}
	return count, nil
}
