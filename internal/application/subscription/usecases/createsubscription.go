package usecases

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/domain/plan"
	"tessera/internal/domain/subscription"
	"tessera/internal/domain/user"
	"tessera/internal/shared/biztime"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

// CreateSubscriptionCommand carries a confirmed payment. Payment processing
// itself happens upstream; by the time this command arrives the money has
// moved.
type CreateSubscriptionCommand struct {
	UserID    uint
	PlanSID   string
	StartDate time.Time
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	historyRepo      subscription.HistoryRepository
	planRepo         plan.Repository
	userDir          user.Directory
	notifier         LifecycleNotifier
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	historyRepo subscription.HistoryRepository,
	planRepo plan.Repository,
	userDir user.Directory,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		planRepo:         planRepo,
		userDir:          userDir,
		logger:           logger,
	}
}

// SetLifecycleNotifier sets the activation notifier (optional).
func (uc *CreateSubscriptionUseCase) SetLifecycleNotifier(notifier LifecycleNotifier) {
	uc.notifier = notifier
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if cmd.PlanSID == "" {
		return nil, fmt.Errorf("plan SID is required")
	}

	exists, err := uc.userDir.Exists(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to check user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	if !p.IsActive() {
		return nil, apperrors.NewConflictError("plan is not available for purchase")
	}

	now := biztime.NowUTC()
	startDate := cmd.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	// One active subscription per user. Payments for a second one must be
	// rejected before creation, not silently stacked.
	existing, err := uc.subscriptionRepo.FindActiveByUserID(ctx, cmd.UserID, now)
	if err != nil {
		uc.logger.Errorw("failed to check existing subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if existing != nil {
		uc.logger.Warnw("rejected subscription creation, user already active",
			"user_id", cmd.UserID,
			"existing_sid", existing.SID(),
		)
		return nil, apperrors.NewConflictError("user already has an active subscription")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription SID: %w", err)
	}

	sub, err := subscription.NewSubscription(sid, cmd.UserID, p, startDate)
	if err != nil {
		uc.logger.Errorw("failed to create subscription aggregate", "error", err)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		uc.logger.Errorw("failed to persist subscription", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to persist subscription: %w", err)
	}

	uc.appendHistory(ctx, sub)

	if uc.notifier != nil {
		if err := uc.notifier.NotifySubscriptionActivated(context.Background(), sub.UserID(), sub.PlanName()); err != nil {
			uc.logger.Warnw("failed to send activation notification",
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
				"error", err,
			)
		}
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"subscription_sid", sub.SID(),
		"user_id", cmd.UserID,
		"plan_sid", cmd.PlanSID,
		"end_date", sub.EndDate(),
	)

	return &CreateSubscriptionResult{Subscription: sub}, nil
}

func (uc *CreateSubscriptionUseCase) appendHistory(ctx context.Context, sub *subscription.Subscription) {
	entry, err := subscription.NewHistoryEntry(sub)
	if err != nil {
		uc.logger.Warnw("failed to build history entry", "subscription_id", sub.ID(), "error", err)
		return
	}
	if err := uc.historyRepo.Append(ctx, entry); err != nil {
		uc.logger.Warnw("failed to append subscription history", "subscription_id", sub.ID(), "error", err)
	}
}
