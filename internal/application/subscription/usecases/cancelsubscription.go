package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/shared/biztime"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	UserID          uint
	SubscriptionSID string
	Reason          string
}

type CancelSubscriptionResult struct {
	Subscription *subscription.Subscription
}

// CancelSubscriptionUseCase transitions a subscription to cancelled via a
// compare-and-set status write. Cancelling an already cancelled subscription
// succeeds without effect; the record itself is kept as billing history.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	historyRepo      subscription.HistoryRepository
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	historyRepo subscription.HistoryRepository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*CancelSubscriptionResult, error) {
	if cmd.SubscriptionSID == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("cancel reason is required")
	}

	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "subscription_sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	if cmd.UserID != 0 && sub.UserID() != cmd.UserID {
		return nil, apperrors.NewForbiddenError("subscription belongs to another user")
	}

	// Idempotent: repeating a cancel is a success, not a conflict.
	if sub.Status() == vo.StatusCancelled {
		return &CancelSubscriptionResult{Subscription: sub}, nil
	}
	if !sub.Status().CanTransitionTo(vo.StatusCancelled) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot cancel a %s subscription", sub.Status()))
	}

	now := biztime.NowUTC()
	ok, err := uc.subscriptionRepo.TransitionStatus(ctx, sub.ID(), sub.Status(), vo.StatusCancelled, &cmd.Reason, now)
	if err != nil {
		uc.logger.Errorw("failed to cancel subscription", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to cancel subscription: %w", err)
	}
	if !ok {
		// Lost the compare-and-set. Re-read and decide from the fresh state.
		fresh, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read subscription: %w", err)
		}
		if fresh == nil {
			return nil, apperrors.NewNotFoundError("subscription not found")
		}
		if fresh.Status() == vo.StatusCancelled {
			return &CancelSubscriptionResult{Subscription: fresh}, nil
		}
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot cancel a %s subscription", fresh.Status()))
	}

	if err := sub.Cancel(cmd.Reason, now); err != nil {
		uc.logger.Warnw("cancelled record diverged from aggregate", "subscription_id", sub.ID(), "error", err)
	}
	uc.appendHistory(ctx, sub)

	uc.logger.Infow("subscription cancelled",
		"subscription_id", sub.ID(),
		"subscription_sid", sub.SID(),
		"user_id", sub.UserID(),
		"reason", cmd.Reason,
	)

	return &CancelSubscriptionResult{Subscription: sub}, nil
}

func (uc *CancelSubscriptionUseCase) appendHistory(ctx context.Context, sub *subscription.Subscription) {
	entry, err := subscription.NewHistoryEntry(sub)
	if err != nil {
		uc.logger.Warnw("failed to build history entry", "subscription_id", sub.ID(), "error", err)
		return
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		uc.logger.Warnw("failed to append subscription history", "subscription_id", sub.ID(), "error", err)
	}
}
