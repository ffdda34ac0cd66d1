package usecases

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/logger"
)

// defaultSweepBatchSize bounds how many records a single scan pass loads.
const defaultSweepBatchSize = 200

// ExpireSubscriptionsUseCase marks subscriptions past their end date as
// expired. It runs as a background job; entitlement checks re-verify the end
// date themselves, so this job exists for reporting consistency and for
// sending expiry notifications, not for enforcement.
//
// Each record is transitioned with a compare-and-set write. A record that
// was already flipped by a concurrent evaluation or an overlapping sweep is
// counted as handled, which makes the whole sweep idempotent.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	historyRepo      subscription.HistoryRepository
	notifier         LifecycleNotifier
	batchSize        int
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	historyRepo subscription.HistoryRepository,
	batchSize int,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	if batchSize <= 0 {
		batchSize = defaultSweepBatchSize
	}
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		batchSize:        batchSize,
		logger:           logger,
	}
}

// SetLifecycleNotifier sets the expiry notifier (optional).
func (uc *ExpireSubscriptionsUseCase) SetLifecycleNotifier(notifier LifecycleNotifier) {
	uc.notifier = notifier
}

// Execute scans in bounded batches until no overdue records remain. Returns
// the number of subscriptions this run actually transitioned.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	transitioned := 0

	for {
		now := biztime.NowUTC()
		batch, err := uc.subscriptionRepo.FindExpiredBatch(ctx, now, uc.batchSize)
		if err != nil {
			return transitioned, fmt.Errorf("failed to find expired subscriptions: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		uc.logger.Infow("processing expired subscription batch", "count", len(batch))

		progressed := false
		for _, sub := range batch {
			ok, err := uc.subscriptionRepo.TransitionStatus(ctx, sub.ID(), vo.StatusActive, vo.StatusExpired, nil, now)
			if err != nil {
				uc.logger.Errorw("failed to expire subscription",
					"subscription_id", sub.ID(),
					"subscription_sid", sub.SID(),
					"error", err,
				)
				continue
			}
			progressed = true
			if !ok {
				// Someone else already moved it out of active.
				uc.logger.Debugw("subscription already transitioned",
					"subscription_id", sub.ID(),
					"subscription_sid", sub.SID(),
				)
				continue
			}

			transitioned++
			uc.recordExpiry(ctx, sub, now)
		}

		// Every record in the batch failed with a repository error; bail out
		// instead of re-reading the same batch forever.
		if !progressed {
			return transitioned, fmt.Errorf("expiry sweep made no progress on a batch of %d", len(batch))
		}

		if len(batch) < uc.batchSize {
			break
		}
	}

	if transitioned > 0 {
		uc.logger.Infow("expiry sweep completed", "transitioned", transitioned)
	}
	return transitioned, nil
}

func (uc *ExpireSubscriptionsUseCase) recordExpiry(ctx context.Context, sub *subscription.Subscription, now time.Time) {
	if err := sub.MarkAsExpired(now); err != nil {
		uc.logger.Warnw("expired record diverged from aggregate", "subscription_id", sub.ID(), "error", err)
	}

	entry, err := subscription.NewHistoryEntry(sub)
	if err != nil {
		uc.logger.Warnw("failed to build history entry", "subscription_id", sub.ID(), "error", err)
	} else if err := uc.historyRepo.Append(ctx, entry); err != nil {
		uc.logger.Warnw("failed to append subscription history", "subscription_id", sub.ID(), "error", err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifySubscriptionExpired(context.Background(), sub.UserID(), sub.PlanName()); err != nil {
			uc.logger.Warnw("failed to send expiry notification",
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
				"error", err,
			)
		}
	}

	uc.logger.Debugw("subscription expired",
		"subscription_id", sub.ID(),
		"subscription_sid", sub.SID(),
	)
}
