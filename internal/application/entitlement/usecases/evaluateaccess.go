package usecases

import (
	"context"
	"errors"
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/logger"
)

type EvaluateAccessCommand struct {
	UserID   uint
	AssetSID string
}

// EvaluateAccessUseCase answers "may this user download this asset right
// now". It is read-only except for one opportunistic correction: a
// subscription found past its end date but still marked active is flipped to
// expired on the spot, so the sweeper's lag never widens the access window.
type EvaluateAccessUseCase struct {
	catalog          asset.Catalog
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewEvaluateAccessUseCase(
	catalog asset.Catalog,
	subscriptionRepo subscription.Repository,
	logger logger.Interface,
) *EvaluateAccessUseCase {
	return &EvaluateAccessUseCase{
		catalog:          catalog,
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *EvaluateAccessUseCase) Execute(ctx context.Context, cmd EvaluateAccessCommand) (*Decision, error) {
	decision, _, _, err := uc.evaluate(ctx, cmd)
	return decision, err
}

// evaluate additionally returns the subscription and asset for callers that
// go on to record a download against the decision.
func (uc *EvaluateAccessUseCase) evaluate(ctx context.Context, cmd EvaluateAccessCommand) (*Decision, *subscription.Subscription, *asset.Asset, error) {
	if cmd.UserID == 0 {
		return nil, nil, nil, fmt.Errorf("user ID is required")
	}
	if cmd.AssetSID == "" {
		return nil, nil, nil, fmt.Errorf("asset SID is required")
	}

	a, err := uc.catalog.Lookup(ctx, cmd.AssetSID)
	if err != nil {
		uc.logger.Errorw("failed to look up asset", "error", err, "asset_sid", cmd.AssetSID)
		return nil, nil, nil, fmt.Errorf("failed to look up asset: %w", err)
	}
	if a == nil {
		return denied(ReasonAssetNotFound), nil, nil, nil
	}
	if !a.IsActive() {
		return denied(ReasonAssetUnavailable), nil, nil, nil
	}

	now := biztime.NowUTC()
	sub, err := uc.subscriptionRepo.FindActiveByUserID(ctx, cmd.UserID, now)
	if err != nil {
		uc.logger.Errorw("failed to find active subscription", "error", err, "user_id", cmd.UserID)
		return nil, nil, nil, fmt.Errorf("failed to find active subscription: %w", err)
	}
	if sub == nil {
		return denied(ReasonNoActiveSubscription), nil, nil, nil
	}

	// The repository query already filters on end_date, but the record may
	// have crossed its end date between the read and this check.
	if sub.IsExpired(now) {
		uc.correctExpiredStatus(ctx, sub)
		return denied(ReasonSubscriptionExpired), nil, nil, nil
	}

	tier, err := sub.SelectDebitTier(a.Tier())
	if err != nil {
		if errors.Is(err, subscription.ErrQuotaExhausted) {
			d := denied(ReasonQuotaExhausted)
			d.SubscriptionSID = sub.SID()
			d.RemainingStandard = sub.Remaining(asset.TierStandard)
			d.RemainingPremium = sub.Remaining(asset.TierPremium)
			return d, nil, nil, nil
		}
		return nil, nil, nil, fmt.Errorf("failed to select debit tier: %w", err)
	}

	return &Decision{
		Allowed:           true,
		Reason:            ReasonAllowed,
		SubscriptionSID:   sub.SID(),
		DebitTier:         tier,
		RemainingStandard: sub.Remaining(asset.TierStandard),
		RemainingPremium:  sub.Remaining(asset.TierPremium),
	}, sub, a, nil
}

// correctExpiredStatus flips a stale active record to expired. Best effort:
// losing the compare-and-set to the sweeper or a concurrent evaluation means
// the record is already in the right state.
func (uc *EvaluateAccessUseCase) correctExpiredStatus(ctx context.Context, sub *subscription.Subscription) {
	now := biztime.NowUTC()
	ok, err := uc.subscriptionRepo.TransitionStatus(ctx, sub.ID(), vo.StatusActive, vo.StatusExpired, nil, now)
	if err != nil {
		uc.logger.Warnw("failed to correct expired subscription status",
			"subscription_id", sub.ID(),
			"subscription_sid", sub.SID(),
			"error", err,
		)
		return
	}
	if ok {
		uc.logger.Infow("corrected stale subscription status to expired",
			"subscription_id", sub.ID(),
			"subscription_sid", sub.SID(),
		)
	}
}
