package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/domain/user"
	"tessera/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (n nopLogger) With(...any) logger.Interface  { return n }
func (n nopLogger) Named(string) logger.Interface { return n }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if sub := args.Get(0); sub != nil {
		return sub.(*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	args := m.Called(ctx, sid)
	if sub := args.Get(0); sub != nil {
		return sub.(*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) FindActiveByUserID(ctx context.Context, userID uint, now time.Time) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID, now)
	if sub := args.Get(0); sub != nil {
		return sub.(*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if subs := args.Get(0); subs != nil {
		return subs.([]*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) FindExpiredBatch(ctx context.Context, now time.Time, limit int) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, now, limit)
	if subs := args.Get(0); subs != nil {
		return subs.([]*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) TransitionStatus(ctx context.Context, id uint, from, to vo.Status, reason *string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, reason, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockSubscriptionRepo) DecrementQuota(ctx context.Context, id uint, tier asset.Tier, amount int, now time.Time) error {
	args := m.Called(ctx, id, tier, amount, now)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) CountByStatus(ctx context.Context, status vo.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) SumAmountCentsSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) ActiveCountByTier(ctx context.Context, now time.Time) (map[asset.Tier]int64, error) {
	args := m.Called(ctx, now)
	if counts := args.Get(0); counts != nil {
		return counts.(map[asset.Tier]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) ActiveCountByPlan(ctx context.Context, now time.Time) (map[uint]int64, error) {
	args := m.Called(ctx, now)
	if counts := args.Get(0); counts != nil {
		return counts.(map[uint]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSubscriptionRepo) CountDistinctUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubscriptionRepo) CountDistinctActiveUsers(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Append(ctx context.Context, entry *subscription.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockHistoryRepo) ListByUserID(ctx context.Context, userID uint, limit int) ([]*subscription.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if entries := args.Get(0); entries != nil {
		return entries.([]*subscription.HistoryEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockHistoryRepo) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Create(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) GetBySID(ctx context.Context, sid string) (*plan.Plan, error) {
	args := m.Called(ctx, sid)
	if p := args.Get(0); p != nil {
		return p.(*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) Update(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPlanRepo) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	args := m.Called(ctx)
	if plans := args.Get(0); plans != nil {
		return plans.([]*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanRepo) List(ctx context.Context) ([]*plan.Plan, error) {
	args := m.Called(ctx)
	if plans := args.Get(0); plans != nil {
		return plans.([]*plan.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserDirectory) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserDirectory) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserDirectory) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockLifecycleNotifier struct {
	mock.Mock
}

func (m *mockLifecycleNotifier) NotifySubscriptionActivated(ctx context.Context, userID uint, planName string) error {
	args := m.Called(ctx, userID, planName)
	return args.Error(0)
}

func (m *mockLifecycleNotifier) NotifySubscriptionExpired(ctx context.Context, userID uint, planName string) error {
	args := m.Called(ctx, userID, planName)
	return args.Error(0)
}
