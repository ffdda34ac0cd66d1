package subscription

import (
	"fmt"
	"time"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	vo "tessera/internal/domain/subscription/valueobjects"
)

// Subscription is the aggregate root of the entitlement engine. It carries a
// denormalized snapshot of the plan taken at creation time (tier category,
// quotas, price), so later plan edits never change what an existing
// subscriber is entitled to.
//
// Invariant: 0 <= used <= total for each tier counter, at all times.
type Subscription struct {
	id            uint
	sid           string
	userID        uint
	planID        uint
	planName      string
	planTier      asset.Tier
	status        vo.Status
	startDate     time.Time
	endDate       time.Time
	standardTotal int
	standardUsed  int
	premiumTotal  int
	premiumUsed   int
	amountCents   int64
	cancelledAt   *time.Time
	cancelReason  *string
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewSubscription creates an active subscription for a user on the given
// plan, copying the plan's quota and price snapshot.
func NewSubscription(sid string, userID uint, p *plan.Plan, startDate time.Time) (*Subscription, error) {
	if sid == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p == nil || p.ID() == 0 {
		return nil, fmt.Errorf("plan is required")
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("start date is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		sid:           sid,
		userID:        userID,
		planID:        p.ID(),
		planName:      p.DisplayName(),
		planTier:      p.TierCategory(),
		status:        vo.StatusActive,
		startDate:     startDate,
		endDate:       startDate.AddDate(0, 0, p.DurationDays()),
		standardTotal: p.StandardQuota(),
		premiumTotal:  p.PremiumQuota(),
		amountCents:   p.PriceCents(),
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence.
func ReconstructSubscription(
	id uint,
	sid string,
	userID, planID uint,
	planName string,
	planTier asset.Tier,
	status vo.Status,
	startDate, endDate time.Time,
	standardTotal, standardUsed, premiumTotal, premiumUsed int,
	amountCents int64,
	cancelledAt *time.Time,
	cancelReason *string,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if standardUsed < 0 || standardUsed > standardTotal {
		return nil, fmt.Errorf("standard quota out of range: used=%d total=%d", standardUsed, standardTotal)
	}
	if premiumUsed < 0 || premiumUsed > premiumTotal {
		return nil, fmt.Errorf("premium quota out of range: used=%d total=%d", premiumUsed, premiumTotal)
	}

	return &Subscription{
		id:            id,
		sid:           sid,
		userID:        userID,
		planID:        planID,
		planName:      planName,
		planTier:      planTier,
		status:        status,
		startDate:     startDate,
		endDate:       endDate,
		standardTotal: standardTotal,
		standardUsed:  standardUsed,
		premiumTotal:  premiumTotal,
		premiumUsed:   premiumUsed,
		amountCents:   amountCents,
		cancelledAt:   cancelledAt,
		cancelReason:  cancelReason,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                { return s.id }
func (s *Subscription) SID() string             { return s.sid }
func (s *Subscription) UserID() uint            { return s.userID }
func (s *Subscription) PlanID() uint            { return s.planID }
func (s *Subscription) PlanName() string        { return s.planName }
func (s *Subscription) PlanTier() asset.Tier    { return s.planTier }
func (s *Subscription) Status() vo.Status       { return s.status }
func (s *Subscription) StartDate() time.Time    { return s.startDate }
func (s *Subscription) EndDate() time.Time      { return s.endDate }
func (s *Subscription) StandardTotal() int      { return s.standardTotal }
func (s *Subscription) StandardUsed() int       { return s.standardUsed }
func (s *Subscription) PremiumTotal() int       { return s.premiumTotal }
func (s *Subscription) PremiumUsed() int        { return s.premiumUsed }
func (s *Subscription) AmountCents() int64      { return s.amountCents }
func (s *Subscription) CancelledAt() *time.Time { return s.cancelledAt }
func (s *Subscription) CancelReason() *string   { return s.cancelReason }
func (s *Subscription) Version() int            { return s.version }
func (s *Subscription) CreatedAt() time.Time    { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time    { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Remaining returns the remaining downloads on a tier counter.
func (s *Subscription) Remaining(tier asset.Tier) int {
	if tier == asset.TierPremium {
		return s.premiumTotal - s.premiumUsed
	}
	return s.standardTotal - s.standardUsed
}

// IsExpired reports whether the subscription's end date has passed,
// regardless of the persisted status field.
func (s *Subscription) IsExpired(now time.Time) bool {
	return !s.endDate.After(now)
}

// IsUsable reports whether the subscription currently grants access: status
// active and end date in the future. The time re-check defends against
// sweeper lag.
func (s *Subscription) IsUsable(now time.Time) bool {
	return s.status == vo.StatusActive && !s.IsExpired(now)
}

// EffectiveStatus returns the status the record should be in right now. A
// record still marked active past its end date is reported as expired even
// before the sweeper reaches it.
func (s *Subscription) EffectiveStatus(now time.Time) vo.Status {
	if s.status == vo.StatusActive && s.IsExpired(now) {
		return vo.StatusExpired
	}
	return s.status
}

// SelectDebitTier chooses which quota counter a download of the given asset
// tier will debit. Premium assets must be served from premium quota; standard
// assets draw from standard quota first, falling back to premium when
// standard is exhausted.
func (s *Subscription) SelectDebitTier(assetTier asset.Tier) (asset.Tier, error) {
	if assetTier == asset.TierPremium {
		if s.Remaining(asset.TierPremium) <= 0 {
			return "", ErrQuotaExhausted
		}
		return asset.TierPremium, nil
	}

	if s.Remaining(asset.TierStandard) > 0 {
		return asset.TierStandard, nil
	}
	if s.Remaining(asset.TierPremium) > 0 {
		return asset.TierPremium, nil
	}
	return "", ErrQuotaExhausted
}

// Debit consumes one download from the given tier counter.
func (s *Subscription) Debit(tier asset.Tier, now time.Time) error {
	if !s.IsUsable(now) {
		return ErrNotActive
	}
	if s.Remaining(tier) <= 0 {
		return ErrQuotaExhausted
	}

	if tier == asset.TierPremium {
		s.premiumUsed++
	} else {
		s.standardUsed++
	}
	s.updatedAt = now
	s.version++
	return nil
}

// TotalRemaining returns the remaining downloads across both tiers.
func (s *Subscription) TotalRemaining() int {
	return s.Remaining(asset.TierStandard) + s.Remaining(asset.TierPremium)
}

// MarkAsExpired transitions the subscription to expired. Calling it on an
// already expired record is a no-op, which makes the sweep idempotent.
func (s *Subscription) MarkAsExpired(now time.Time) error {
	if s.status == vo.StatusExpired {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusExpired) {
		return fmt.Errorf("%w: %s -> expired", ErrInvalidTransition, s.status)
	}
	s.status = vo.StatusExpired
	s.updatedAt = now
	s.version++
	return nil
}

// Cancel transitions the subscription to cancelled. The record is never
// deleted; it remains as billing history.
func (s *Subscription) Cancel(reason string, now time.Time) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return fmt.Errorf("%w: %s -> cancelled", ErrInvalidTransition, s.status)
	}
	if reason == "" {
		return fmt.Errorf("cancel reason is required")
	}
	s.status = vo.StatusCancelled
	s.cancelledAt = &now
	s.cancelReason = &reason
	s.updatedAt = now
	s.version++
	return nil
}
