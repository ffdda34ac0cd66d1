package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	"tessera/internal/shared/logger"
)

const (
	activePlansKey = "plans:active"

	basePlanTTL   = 10 * time.Minute
	planTTLJitter = 5 * time.Minute // TTL range: 10-15 min (anti-stampede)
)

type cachedPlan struct {
	ID            uint   `json:"id"`
	SID           string `json:"sid"`
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	TierCategory  string `json:"tier_category"`
	DurationDays  int    `json:"duration_days"`
	StandardQuota int    `json:"standard_quota"`
	PremiumQuota  int    `json:"premium_quota"`
	PriceCents    int64  `json:"price_cents"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

// CachedPlanRepository decorates a plan.Repository with a Redis read cache
// for the active-plan listing, the hot path of the public pricing page.
// Writes pass through and invalidate.
type CachedPlanRepository struct {
	plan.Repository

	client *redis.Client
	logger logger.Interface
}

func NewCachedPlanRepository(inner plan.Repository, client *redis.Client, logger logger.Interface) *CachedPlanRepository {
	return &CachedPlanRepository{
		Repository: inner,
		client:     client,
		logger:     logger,
	}
}

func (r *CachedPlanRepository) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	payload, err := r.client.Get(ctx, activePlansKey).Bytes()
	if err == nil {
		plans, decodeErr := decodePlans(payload)
		if decodeErr == nil {
			return plans, nil
		}
		r.logger.Warnw("failed to decode cached plans, falling back to database", "error", decodeErr)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warnw("plan cache read failed, falling back to database", "error", err)
	}

	plans, err := r.Repository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := encodePlans(plans); err == nil {
		ttl := basePlanTTL + rand.N(planTTLJitter)
		if err := r.client.Set(ctx, activePlansKey, encoded, ttl).Err(); err != nil {
			r.logger.Warnw("failed to populate plan cache", "error", err)
		}
	}

	return plans, nil
}

func (r *CachedPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	if err := r.Repository.Create(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedPlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	if err := r.Repository.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedPlanRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, activePlansKey).Err(); err != nil {
		r.logger.Warnw("failed to invalidate plan cache", "error", err)
	}
}

func encodePlans(plans []*plan.Plan) ([]byte, error) {
	cached := make([]cachedPlan, 0, len(plans))
	for _, p := range plans {
		cached = append(cached, cachedPlan{
			ID:            p.ID(),
			SID:           p.SID(),
			Name:          p.Name(),
			DisplayName:   p.DisplayName(),
			TierCategory:  p.TierCategory().String(),
			DurationDays:  p.DurationDays(),
			StandardQuota: p.StandardQuota(),
			PremiumQuota:  p.PremiumQuota(),
			PriceCents:    p.PriceCents(),
			Status:        p.Status().String(),
			CreatedAt:     p.CreatedAt().Unix(),
			UpdatedAt:     p.UpdatedAt().Unix(),
		})
	}
	return json.Marshal(cached)
}

func decodePlans(payload []byte) ([]*plan.Plan, error) {
	var cached []cachedPlan
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached plans: %w", err)
	}

	plans := make([]*plan.Plan, 0, len(cached))
	for _, c := range cached {
		p, err := plan.ReconstructPlan(
			c.ID, c.SID, c.Name, c.DisplayName,
			asset.Tier(c.TierCategory),
			c.DurationDays, c.StandardQuota, c.PremiumQuota, c.PriceCents,
			plan.Status(c.Status),
			time.Unix(c.CreatedAt, 0).UTC(), time.Unix(c.UpdatedAt, 0).UTC(),
		)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}
