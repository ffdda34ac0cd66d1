package usecases

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/domain/download"
	"tessera/internal/domain/plan"
	"tessera/internal/domain/subscription"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/logger"
)

type GetAnalyticsCommand struct {
	// PeriodDays is the trailing window length. Defaults to 30.
	PeriodDays int
}

type PlanBreakdown struct {
	PlanSID     string
	DisplayName string
	ActiveCount int64
}

// AnalyticsResult covers a trailing period ending roughly now.
type AnalyticsResult struct {
	GeneratedAt time.Time
	PeriodDays  int

	NewSubscriptions int64
	RevenueCents     int64
	Downloads        int64

	ByPlan []PlanBreakdown
}

type GetAnalyticsUseCase struct {
	subscriptionRepo subscription.Repository
	planRepo         plan.Repository
	ledger           download.Ledger
	logger           logger.Interface
}

func NewGetAnalyticsUseCase(
	subscriptionRepo subscription.Repository,
	planRepo plan.Repository,
	ledger download.Ledger,
	logger logger.Interface,
) *GetAnalyticsUseCase {
	return &GetAnalyticsUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		ledger:           ledger,
		logger:           logger,
	}
}

func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, cmd GetAnalyticsCommand) (*AnalyticsResult, error) {
	periodDays := cmd.PeriodDays
	if periodDays <= 0 {
		periodDays = 30
	}

	now := biztime.NowUTC()
	since := biztime.DaysAgo(periodDays)
	result := &AnalyticsResult{GeneratedAt: now, PeriodDays: periodDays}

	var err error
	if result.NewSubscriptions, err = uc.subscriptionRepo.CountCreatedSince(ctx, since); err != nil {
		return nil, fmt.Errorf("failed to count new subscriptions: %w", err)
	}
	if result.RevenueCents, err = uc.subscriptionRepo.SumAmountCentsSince(ctx, since); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if result.Downloads, err = uc.ledger.CountSince(ctx, since); err != nil {
		return nil, fmt.Errorf("failed to count downloads: %w", err)
	}

	byPlan, err := uc.subscriptionRepo.ActiveCountByPlan(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count active subscriptions by plan: %w", err)
	}
	plans, err := uc.planRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	for _, p := range plans {
		count := byPlan[p.ID()]
		if count == 0 {
			continue
		}
		result.ByPlan = append(result.ByPlan, PlanBreakdown{
			PlanSID:     p.SID(),
			DisplayName: p.DisplayName(),
			ActiveCount: count,
		})
	}

	return result, nil
}
