// Package plan models subscription plans. Plans are immutable once published:
// pricing or quota changes are made by archiving a plan and creating a new
// one, so entitlement decisions on existing subscriptions stay stable.
package plan

import (
	"fmt"
	"time"

	"tessera/internal/domain/asset"
)

// Status represents the lifecycle state of a plan.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) String() string {
	return string(s)
}

// Plan is the plan aggregate root.
type Plan struct {
	id            uint
	sid           string
	name          string
	displayName   string
	tierCategory  asset.Tier
	durationDays  int
	standardQuota int
	premiumQuota  int
	priceCents    int64
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPlan creates a new published plan.
func NewPlan(sid, name, displayName string, tierCategory asset.Tier, durationDays, standardQuota, premiumQuota int, priceCents int64) (*Plan, error) {
	if sid == "" {
		return nil, fmt.Errorf("plan SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if !tierCategory.Valid() {
		return nil, fmt.Errorf("invalid tier category: %s", tierCategory)
	}
	if durationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if standardQuota < 0 || premiumQuota < 0 {
		return nil, fmt.Errorf("quotas cannot be negative")
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if displayName == "" {
		displayName = name
	}

	now := time.Now().UTC()
	return &Plan{
		sid:           sid,
		name:          name,
		displayName:   displayName,
		tierCategory:  tierCategory,
		durationDays:  durationDays,
		standardQuota: standardQuota,
		premiumQuota:  premiumQuota,
		priceCents:    priceCents,
		status:        StatusActive,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	id uint,
	sid, name, displayName string,
	tierCategory asset.Tier,
	durationDays, standardQuota, premiumQuota int,
	priceCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !tierCategory.Valid() {
		return nil, fmt.Errorf("invalid tier category: %s", tierCategory)
	}
	if status != StatusActive && status != StatusArchived {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	return &Plan{
		id:            id,
		sid:           sid,
		name:          name,
		displayName:   displayName,
		tierCategory:  tierCategory,
		durationDays:  durationDays,
		standardQuota: standardQuota,
		premiumQuota:  premiumQuota,
		priceCents:    priceCents,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (p *Plan) ID() uint                 { return p.id }
func (p *Plan) SID() string              { return p.sid }
func (p *Plan) Name() string             { return p.name }
func (p *Plan) DisplayName() string      { return p.displayName }
func (p *Plan) TierCategory() asset.Tier { return p.tierCategory }
func (p *Plan) DurationDays() int        { return p.durationDays }
func (p *Plan) StandardQuota() int       { return p.standardQuota }
func (p *Plan) PremiumQuota() int        { return p.premiumQuota }
func (p *Plan) PriceCents() int64        { return p.priceCents }
func (p *Plan) Status() Status           { return p.status }
func (p *Plan) CreatedAt() time.Time     { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time     { return p.updatedAt }

// SetID sets the plan ID (only for persistence layer use)
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsActive reports whether the plan can be subscribed to.
func (p *Plan) IsActive() bool {
	return p.status == StatusActive
}

// Archive withdraws the plan from sale. Existing subscriptions keep their
// quota snapshot and are not affected.
func (p *Plan) Archive() error {
	if p.status == StatusArchived {
		return nil
	}
	p.status = StatusArchived
	p.updatedAt = time.Now().UTC()
	return nil
}
