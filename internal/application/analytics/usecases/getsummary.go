package usecases

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/domain/user"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/logger"
)

// SummaryResult is a dashboard snapshot. The counts come from separate
// queries without a shared transaction, so a record transitioning mid-read
// can skew adjacent numbers by one. The dashboard reads as of roughly now;
// that is the contract.
type SummaryResult struct {
	GeneratedAt time.Time

	TotalSubscriptions     int64
	ActiveSubscriptions    int64
	ExpiredSubscriptions   int64
	CancelledSubscriptions int64

	ActiveUsers              int64
	UsersWithoutSubscription int64

	ActiveByTier map[asset.Tier]int64
}

type GetSummaryUseCase struct {
	subscriptionRepo subscription.Repository
	userDir          user.Directory
	logger           logger.Interface
}

func NewGetSummaryUseCase(
	subscriptionRepo subscription.Repository,
	userDir user.Directory,
	logger logger.Interface,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		subscriptionRepo: subscriptionRepo,
		userDir:          userDir,
		logger:           logger,
	}
}

func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*SummaryResult, error) {
	now := biztime.NowUTC()
	result := &SummaryResult{GeneratedAt: now}

	var err error
	if result.TotalSubscriptions, err = uc.subscriptionRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	if result.ActiveSubscriptions, err = uc.subscriptionRepo.CountByStatus(ctx, vo.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	if result.ExpiredSubscriptions, err = uc.subscriptionRepo.CountByStatus(ctx, vo.StatusExpired); err != nil {
		return nil, fmt.Errorf("failed to count expired subscriptions: %w", err)
	}
	if result.CancelledSubscriptions, err = uc.subscriptionRepo.CountByStatus(ctx, vo.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to count cancelled subscriptions: %w", err)
	}

	totalUsers, err := uc.userDir.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	subscribedUsers, err := uc.subscriptionRepo.CountDistinctActiveUsers(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count subscribed users: %w", err)
	}
	result.ActiveUsers = subscribedUsers
	result.UsersWithoutSubscription = totalUsers - subscribedUsers
	if result.UsersWithoutSubscription < 0 {
		result.UsersWithoutSubscription = 0
	}

	if result.ActiveByTier, err = uc.subscriptionRepo.ActiveCountByTier(ctx, now); err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions by tier: %w", err)
	}

	return result, nil
}
