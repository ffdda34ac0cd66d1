package subscription

import (
	"fmt"
	"time"

	"tessera/internal/domain/asset"
	vo "tessera/internal/domain/subscription/valueobjects"
)

// HistoryEntry is an append-only snapshot written whenever a subscription is
// created or changes status. It exists so per-user totals and distributions
// over time can be answered without replaying status transitions. Entries
// are never mutated after insertion.
type HistoryEntry struct {
	id             uint
	userID         uint
	subscriptionID uint
	planName       string
	planTier       asset.Tier
	status         vo.Status
	createdAt      time.Time
}

// NewHistoryEntry snapshots the given subscription state.
func NewHistoryEntry(sub *Subscription) (*HistoryEntry, error) {
	if sub == nil || sub.ID() == 0 {
		return nil, fmt.Errorf("subscription with ID is required")
	}
	return &HistoryEntry{
		userID:         sub.UserID(),
		subscriptionID: sub.ID(),
		planName:       sub.PlanName(),
		planTier:       sub.PlanTier(),
		status:         sub.Status(),
		createdAt:      time.Now().UTC(),
	}, nil
}

// ReconstructHistoryEntry reconstructs an entry from persistence.
func ReconstructHistoryEntry(id, userID, subscriptionID uint, planName string, planTier asset.Tier, status vo.Status, createdAt time.Time) (*HistoryEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("history entry ID cannot be zero")
	}
	return &HistoryEntry{
		id:             id,
		userID:         userID,
		subscriptionID: subscriptionID,
		planName:       planName,
		planTier:       planTier,
		status:         status,
		createdAt:      createdAt,
	}, nil
}

func (h *HistoryEntry) ID() uint             { return h.id }
func (h *HistoryEntry) UserID() uint         { return h.userID }
func (h *HistoryEntry) SubscriptionID() uint { return h.subscriptionID }
func (h *HistoryEntry) PlanName() string     { return h.planName }
func (h *HistoryEntry) PlanTier() asset.Tier { return h.planTier }
func (h *HistoryEntry) Status() vo.Status    { return h.status }
func (h *HistoryEntry) CreatedAt() time.Time { return h.createdAt }

// SetID sets the entry ID (only for persistence layer use)
func (h *HistoryEntry) SetID(id uint) error {
	if h.id != 0 {
		return fmt.Errorf("history entry ID is already set")
	}
	h.id = id
	return nil
}
