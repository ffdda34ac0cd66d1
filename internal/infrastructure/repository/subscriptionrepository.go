package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/infrastructure/persistence/mappers"
	"tessera/internal/infrastructure/persistence/models"
	"tessera/internal/shared/logger"
)

// SubscriptionRepository implements subscription.Repository using GORM.
// Every mutation is a single-row conditional UPDATE whose guard is evaluated
// by the database, so concurrent writers can never push a counter past its
// total or revive a terminal status.
type SubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB) subscription.Repository {
	return &SubscriptionRepository{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger.NewLogger().With("component", "repository.subscription"),
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.mapper.ToModel(sub)
	if err != nil {
		return fmt.Errorf("failed to map subscription: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	if err := sub.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription by SID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepository) FindActiveByUserID(ctx context.Context, userID uint, now time.Time) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND end_date > ?", userID, vo.StatusActive.String(), now).
		Order("end_date DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepository) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return r.mapper.ToEntities(subModels)
}

func (r *SubscriptionRepository) FindExpiredBatch(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date <= ?", vo.StatusActive.String(), now).
		Order("end_date ASC").
		Limit(limit).
		Find(&subModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}
	return r.mapper.ToEntities(subModels)
}

func (r *SubscriptionRepository) TransitionStatus(ctx context.Context, id uint, from, to vo.Status, reason *string, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to.String(),
		"updated_at": at,
		"version":    gorm.Expr("version + 1"),
	}
	if to == vo.StatusCancelled {
		updates["cancelled_at"] = at
		updates["cancel_reason"] = reason
	}

	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition subscription status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *SubscriptionRepository) DecrementQuota(ctx context.Context, id uint, tier asset.Tier, amount int, now time.Time) error {
	return debitQuota(r.db.WithContext(ctx), id, tier, amount, now)
}

// debitQuota performs the guarded quota decrement against the given handle,
// which may be a transaction. The guard rides in the UPDATE itself; when no
// row matches, the current row is re-read to classify the refusal.
func debitQuota(db *gorm.DB, id uint, tier asset.Tier, amount int, now time.Time) error {
	usedColumn := "standard_used"
	totalColumn := "standard_total"
	if tier == asset.TierPremium {
		usedColumn = "premium_used"
		totalColumn = "premium_total"
	}

	result := db.
		Model(&models.SubscriptionModel{}).
		Where(fmt.Sprintf("id = ? AND status = ? AND end_date > ? AND %s + ? <= %s", usedColumn, totalColumn),
			id, vo.StatusActive.String(), now, amount).
		Updates(map[string]interface{}{
			usedColumn:   gorm.Expr(usedColumn+" + ?", amount),
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to decrement quota: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var model models.SubscriptionModel
	err := db.First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return subscription.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to classify quota refusal: %w", err)
	}
	if model.Status != vo.StatusActive.String() || !model.EndDate.After(now) {
		return subscription.ErrNotActive
	}
	return subscription.ErrQuotaExhausted
}

func (r *SubscriptionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) CountByStatus(ctx context.Context, status vo.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions by status: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count new subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) SumAmountCentsSince(ctx context.Context, since time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Select("SUM(amount_cents)").
		Where("created_at >= ?", since).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *SubscriptionRepository) ActiveCountByTier(ctx context.Context, now time.Time) (map[asset.Tier]int64, error) {
	var rows []struct {
		PlanTier string
		Count    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Select("plan_tier, COUNT(*) AS count").
		Where("status = ? AND end_date > ?", vo.StatusActive.String(), now).
		Group("plan_tier").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions by tier: %w", err)
	}

	counts := make(map[asset.Tier]int64, len(rows))
	for _, row := range rows {
		counts[asset.Tier(row.PlanTier)] = row.Count
	}
	return counts, nil
}

func (r *SubscriptionRepository) ActiveCountByPlan(ctx context.Context, now time.Time) (map[uint]int64, error) {
	var rows []struct {
		PlanID uint
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Select("plan_id, COUNT(*) AS count").
		Where("status = ? AND end_date > ?", vo.StatusActive.String(), now).
		Group("plan_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions by plan: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PlanID] = row.Count
	}
	return counts, nil
}

func (r *SubscriptionRepository) CountDistinctUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct users: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepository) CountDistinctActiveUsers(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("status = ? AND end_date > ?", vo.StatusActive.String(), now).
		Distinct("user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct active users: %w", err)
	}
	return count, nil
}
