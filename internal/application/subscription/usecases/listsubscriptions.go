package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/subscription"
	"tessera/internal/shared/logger"
)

type ListSubscriptionsCommand struct {
	UserID uint
}

type ListSubscriptionsResult struct {
	Subscriptions []*subscription.Subscription
}

// ListSubscriptionsUseCase returns every subscription a user has held, newest
// first, including expired and cancelled records.
type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, cmd ListSubscriptionsCommand) (*ListSubscriptionsResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	subs, err := uc.subscriptionRepo.ListByUserID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return &ListSubscriptionsResult{Subscriptions: subs}, nil
}
