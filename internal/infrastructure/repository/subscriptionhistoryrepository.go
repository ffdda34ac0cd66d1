package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/infrastructure/persistence/mappers"
	"tessera/internal/infrastructure/persistence/models"
	"tessera/internal/shared/logger"
)

type SubscriptionHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.HistoryMapper
	logger logger.Interface
}

func NewSubscriptionHistoryRepository(db *gorm.DB) subscription.HistoryRepository {
	return &SubscriptionHistoryRepository{
		db:     db,
		mapper: mappers.NewHistoryMapper(),
		logger: logger.NewLogger().With("component", "repository.subscriptionhistory"),
	}
}

func (r *SubscriptionHistoryRepository) Append(ctx context.Context, entry *subscription.HistoryEntry) error {
	model, err := r.mapper.ToModel(entry)
	if err != nil {
		return fmt.Errorf("failed to map history entry: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	if err := entry.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set history entry ID: %w", err)
	}
	return nil
}

func (r *SubscriptionHistoryRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]*subscription.HistoryEntry, error) {
	var historyModels []*models.SubscriptionHistoryModel
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&historyModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	return r.mapper.ToEntities(historyModels)
}

func (r *SubscriptionHistoryRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionHistoryModel{}).
		Where("user_id = ? AND status = ?", userID, vo.StatusActive.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}
