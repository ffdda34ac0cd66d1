package usecases

import "tessera/internal/domain/asset"

// Reason is a stable, machine-readable code explaining an entitlement
// decision. Clients branch on these codes, so they never change meaning.
type Reason string

const (
	ReasonAllowed              Reason = "allowed"
	ReasonAssetNotFound        Reason = "asset_not_found"
	ReasonAssetUnavailable     Reason = "asset_unavailable"
	ReasonNoActiveSubscription Reason = "no_active_subscription"
	ReasonSubscriptionExpired  Reason = "subscription_expired"
	ReasonQuotaExhausted       Reason = "quota_exhausted"
)

// Decision is the outcome of an entitlement evaluation.
type Decision struct {
	Allowed           bool
	Reason            Reason
	SubscriptionSID   string
	DebitTier         asset.Tier
	RemainingStandard int
	RemainingPremium  int
}

func denied(reason Reason) *Decision {
	return &Decision{Allowed: false, Reason: reason}
}
