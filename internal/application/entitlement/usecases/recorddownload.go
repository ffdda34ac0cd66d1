package usecases

import (
	"context"
	"errors"
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/download"
	"tessera/internal/domain/subscription"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

const (
	// debitMaxAttempts bounds the retry loop on compare-and-set conflicts.
	debitMaxAttempts = 3

	// lowQuotaThreshold is the remaining-download count at which the user is
	// nudged to renew.
	lowQuotaThreshold = 3
)

// QuotaNotifier delivers the low-quota nudge. Delivery is best effort.
type QuotaNotifier interface {
	NotifyLowQuota(ctx context.Context, userID uint, remaining int) error
}

type RecordDownloadCommand struct {
	UserID   uint
	AssetSID string
}

type RecordDownloadResult struct {
	Decision *Decision
	Event    *download.Event
}

// RecordDownloadUseCase re-evaluates entitlement and commits the quota debit
// together with the ledger event in one atomic write. A debit lost to a
// concurrent writer is retried from a fresh read a bounded number of times.
type RecordDownloadUseCase struct {
	evaluator     *EvaluateAccessUseCase
	ledger        download.Ledger
	quotaNotifier QuotaNotifier
	logger        logger.Interface
}

func NewRecordDownloadUseCase(
	evaluator *EvaluateAccessUseCase,
	ledger download.Ledger,
	logger logger.Interface,
) *RecordDownloadUseCase {
	return &RecordDownloadUseCase{
		evaluator: evaluator,
		ledger:    ledger,
		logger:    logger,
	}
}

// SetQuotaNotifier sets the low-quota notifier (optional).
func (uc *RecordDownloadUseCase) SetQuotaNotifier(notifier QuotaNotifier) {
	uc.quotaNotifier = notifier
}

func (uc *RecordDownloadUseCase) Execute(ctx context.Context, cmd RecordDownloadCommand) (*RecordDownloadResult, error) {
	for attempt := 1; attempt <= debitMaxAttempts; attempt++ {
		decision, sub, a, err := uc.evaluator.evaluate(ctx, EvaluateAccessCommand{
			UserID:   cmd.UserID,
			AssetSID: cmd.AssetSID,
		})
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return &RecordDownloadResult{Decision: decision}, nil
		}

		eventSID, err := id.GenerateWithPrefix(id.PrefixDownload, id.DefaultLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate event SID: %w", err)
		}

		event, err := download.NewEvent(eventSID, cmd.UserID, sub.ID(), a, decision.DebitTier, biztime.NowUTC())
		if err != nil {
			return nil, fmt.Errorf("failed to create download event: %w", err)
		}

		err = uc.ledger.Record(ctx, event)
		switch {
		case err == nil:
			uc.applyDebitToDecision(decision)
			uc.notifyIfQuotaLow(cmd.UserID, decision)
			return &RecordDownloadResult{Decision: decision, Event: event}, nil

		case errors.Is(err, subscription.ErrConcurrentUpdate):
			uc.logger.Debugw("quota debit lost to concurrent writer, retrying",
				"user_id", cmd.UserID,
				"asset_sid", cmd.AssetSID,
				"attempt", attempt,
			)
			continue

		case errors.Is(err, subscription.ErrQuotaExhausted):
			// A concurrent download consumed the last slot between the
			// evaluation and the debit.
			return &RecordDownloadResult{Decision: denied(ReasonQuotaExhausted)}, nil

		case errors.Is(err, subscription.ErrNotActive):
			return &RecordDownloadResult{Decision: denied(ReasonSubscriptionExpired)}, nil

		default:
			uc.logger.Errorw("failed to record download",
				"error", err,
				"user_id", cmd.UserID,
				"asset_sid", cmd.AssetSID,
			)
			return nil, fmt.Errorf("failed to record download: %w", err)
		}
	}

	uc.logger.Warnw("quota debit retries exhausted",
		"user_id", cmd.UserID,
		"asset_sid", cmd.AssetSID,
		"attempts", debitMaxAttempts,
	)
	return nil, fmt.Errorf("record download: %w", subscription.ErrConcurrentUpdate)
}

// applyDebitToDecision folds the committed debit into the remaining counters,
// which were read before the write landed.
func (uc *RecordDownloadUseCase) applyDebitToDecision(decision *Decision) {
	if decision.DebitTier == asset.TierPremium {
		decision.RemainingPremium--
	} else {
		decision.RemainingStandard--
	}
}

func (uc *RecordDownloadUseCase) notifyIfQuotaLow(userID uint, decision *Decision) {
	if uc.quotaNotifier == nil {
		return
	}
	remaining := decision.RemainingStandard + decision.RemainingPremium
	if remaining > lowQuotaThreshold {
		return
	}
	if err := uc.quotaNotifier.NotifyLowQuota(context.Background(), userID, remaining); err != nil {
		uc.logger.Warnw("failed to send low quota notification",
			"user_id", userID,
			"remaining", remaining,
			"error", err,
		)
	}
}
