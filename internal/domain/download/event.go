// Package download models the append-only ledger of consumption events. An
// event exists if and only if the matching quota decrement was committed;
// the ledger writes both in one atomic unit.
package download

import (
	"fmt"
	"time"

	"tessera/internal/domain/asset"
)

// Event is one recorded download. Events are never mutated or deleted.
type Event struct {
	id             uint
	sid            string
	userID         uint
	subscriptionID uint
	assetID        uint
	assetSID       string
	tier           asset.Tier
	downloadedAt   time.Time
}

// NewEvent creates a download event for the given debit. tier is the quota
// counter that was selected, which may be premium for a standard asset when
// standard quota was exhausted.
func NewEvent(sid string, userID, subscriptionID uint, a *asset.Asset, tier asset.Tier, at time.Time) (*Event, error) {
	if sid == "" {
		return nil, fmt.Errorf("event SID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if a == nil || a.ID() == 0 {
		return nil, fmt.Errorf("asset is required")
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid tier: %s", tier)
	}
	return &Event{
		sid:            sid,
		userID:         userID,
		subscriptionID: subscriptionID,
		assetID:        a.ID(),
		assetSID:       a.SID(),
		tier:           tier,
		downloadedAt:   at,
	}, nil
}

// ReconstructEvent reconstructs an event from persistence.
func ReconstructEvent(id uint, sid string, userID, subscriptionID, assetID uint, assetSID string, tier asset.Tier, downloadedAt time.Time) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	return &Event{
		id:             id,
		sid:            sid,
		userID:         userID,
		subscriptionID: subscriptionID,
		assetID:        assetID,
		assetSID:       assetSID,
		tier:           tier,
		downloadedAt:   downloadedAt,
	}, nil
}

func (e *Event) ID() uint                { return e.id }
func (e *Event) SID() string             { return e.sid }
func (e *Event) UserID() uint            { return e.userID }
func (e *Event) SubscriptionID() uint    { return e.subscriptionID }
func (e *Event) AssetID() uint           { return e.assetID }
func (e *Event) AssetSID() string        { return e.assetSID }
func (e *Event) Tier() asset.Tier        { return e.tier }
func (e *Event) DownloadedAt() time.Time { return e.downloadedAt }

// SetID sets the event ID (only for persistence layer use)
func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	e.id = id
	return nil
}
