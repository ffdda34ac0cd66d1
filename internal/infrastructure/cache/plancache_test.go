package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
)

type countingPlanRepo struct {
	plan.Repository

	listActiveCalls int
	plans           []*plan.Plan
}

func (r *countingPlanRepo) ListActive(context.Context) ([]*plan.Plan, error) {
	r.listActiveCalls++
	return r.plans, nil
}

func (r *countingPlanRepo) Update(context.Context, *plan.Plan) error { return nil }

func testPlans(t *testing.T) []*plan.Plan {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	basic, err := plan.ReconstructPlan(1, "plan_basic000001", "basic", "Basic", asset.TierStandard, 30, 10, 0, 999, plan.StatusActive, now, now)
	require.NoError(t, err)
	pro, err := plan.ReconstructPlan(2, "plan_pro00000001", "pro", "Pro", asset.TierPremium, 30, 50, 20, 2999, plan.StatusActive, now, now)
	require.NoError(t, err)
	return []*plan.Plan{basic, pro}
}

func TestCachedPlanRepositoryServesFromCache(t *testing.T) {
	_, client := newTestRedis(t)
	inner := &countingPlanRepo{plans: testPlans(t)}
	repo := NewCachedPlanRepository(inner, client, nopLogger{})

	first, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 1, inner.listActiveCalls)

	second, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, 1, inner.listActiveCalls, "second listing should hit the cache")
	assert.Equal(t, "plan_basic000001", second[0].SID())
	assert.Equal(t, asset.TierPremium, second[1].TierCategory())
}

func TestCachedPlanRepositoryInvalidatesOnUpdate(t *testing.T) {
	_, client := newTestRedis(t)
	inner := &countingPlanRepo{plans: testPlans(t)}
	repo := NewCachedPlanRepository(inner, client, nopLogger{})

	_, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Update(context.Background(), testPlans(t)[0]))

	_, err = repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listActiveCalls, "update should drop the cached listing")
}
