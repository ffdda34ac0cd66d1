// Package asset models the marketplace asset catalog consumed by the
// entitlement engine. The catalog itself is an external collaborator; the
// engine only needs an asset's tier and availability.
package asset

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Tier classifies an asset and determines which quota counter a download
// debits.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) Valid() bool {
	return t == TierStandard || t == TierPremium
}

// ParseTier parses a tier from user input, tolerating case and whitespace.
func ParseTier(value string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid asset tier: %q", value)
	}
	return t, nil
}

// Asset represents a downloadable catalog entry.
type Asset struct {
	id        uint
	sid       string
	title     string
	tier      Tier
	active    bool
	createdAt time.Time
}

// NewAsset creates a new catalog asset.
func NewAsset(sid, title string, tier Tier) (*Asset, error) {
	if sid == "" {
		return nil, fmt.Errorf("asset SID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("asset title is required")
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid asset tier: %s", tier)
	}
	return &Asset{
		sid:       sid,
		title:     title,
		tier:      tier,
		active:    true,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructAsset reconstructs an asset from persistence.
func ReconstructAsset(id uint, sid, title string, tier Tier, active bool, createdAt time.Time) (*Asset, error) {
	if id == 0 {
		return nil, fmt.Errorf("asset ID cannot be zero")
	}
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid asset tier: %s", tier)
	}
	return &Asset{
		id:        id,
		sid:       sid,
		title:     title,
		tier:      tier,
		active:    active,
		createdAt: createdAt,
	}, nil
}

func (a *Asset) ID() uint             { return a.id }
func (a *Asset) SID() string          { return a.sid }
func (a *Asset) Title() string        { return a.title }
func (a *Asset) Tier() Tier           { return a.tier }
func (a *Asset) IsActive() bool       { return a.active }
func (a *Asset) CreatedAt() time.Time { return a.createdAt }

// SetID sets the asset ID (only for persistence layer use)
func (a *Asset) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("asset ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("asset ID cannot be zero")
	}
	a.id = id
	return nil
}

// Deactivate removes the asset from circulation without deleting it.
func (a *Asset) Deactivate() {
	a.active = false
}

// Catalog is the lookup contract the entitlement engine consumes.
// Lookup returns (nil, nil) when the asset does not exist.
type Catalog interface {
	Lookup(ctx context.Context, sid string) (*Asset, error)
}

// Registry is the admin-facing catalog contract: registration and
// availability management on top of Catalog lookups.
type Registry interface {
	Catalog
	Create(ctx context.Context, a *Asset) error
	List(ctx context.Context) ([]*Asset, error)
	SetActive(ctx context.Context, sid string, active bool) error
}
