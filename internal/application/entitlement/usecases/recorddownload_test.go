package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/download"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
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

type fakeCatalog struct {
	assets map[string]*asset.Asset
}

func (c *fakeCatalog) Lookup(_ context.Context, sid string) (*asset.Asset, error) {
	return c.assets[sid], nil
}

// subRow is the mutable state behind the in-memory subscription store. All
// guards are evaluated under the store mutex, mirroring the conditional
// UPDATE semantics of the real repository.
type subRow struct {
	sid           string
	userID        uint
	status        vo.Status
	startDate     time.Time
	endDate       time.Time
	standardTotal int
	standardUsed  int
	premiumTotal  int
	premiumUsed   int
	version       int
}

type memorySubscriptionStore struct {
	subscription.Repository

	mu sync.Mutex
	// staleReads makes FindActiveByUserID skip the end-date filter,
	// simulating a record read just before its end date passed.
	staleReads bool
	rows       map[uint]*subRow
}

func newMemorySubscriptionStore() *memorySubscriptionStore {
	return &memorySubscriptionStore{rows: map[uint]*subRow{}}
}

func (s *memorySubscriptionStore) put(id uint, row *subRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[id] = row
}

func (s *memorySubscriptionStore) row(id uint) subRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.rows[id]
}

func (s *memorySubscriptionStore) FindActiveByUserID(_ context.Context, userID uint, now time.Time) (*subscription.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.userID != userID || row.status != vo.StatusActive {
			continue
		}
		if !s.staleReads && !row.endDate.After(now) {
			continue
		}
		return subscription.ReconstructSubscription(
			id, row.sid, row.userID, 1, "Pro", asset.TierPremium,
			row.status, row.startDate, row.endDate,
			row.standardTotal, row.standardUsed, row.premiumTotal, row.premiumUsed,
			1999, nil, nil, row.version, row.startDate, row.startDate,
		)
	}
	return nil, nil
}

func (s *memorySubscriptionStore) TransitionStatus(_ context.Context, id uint, from, to vo.Status, _ *string, _ time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || row.status != from {
		return false, nil
	}
	row.status = to
	row.version++
	return true, nil
}

func (s *memorySubscriptionStore) DecrementQuota(_ context.Context, id uint, tier asset.Tier, amount int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return subscription.ErrNotFound
	}
	if row.status != vo.StatusActive || !row.endDate.After(now) {
		return subscription.ErrNotActive
	}
	if tier == asset.TierPremium {
		if row.premiumUsed+amount > row.premiumTotal {
			return subscription.ErrQuotaExhausted
		}
		row.premiumUsed += amount
	} else {
		if row.standardUsed+amount > row.standardTotal {
			return subscription.ErrQuotaExhausted
		}
		row.standardUsed += amount
	}
	row.version++
	return nil
}

// memoryLedger appends an event only when the debit commits, like the
// transactional implementation. conflictsLeft injects compare-and-set losses
// ahead of successful debits.
type memoryLedger struct {
	store *memorySubscriptionStore

	mu            sync.Mutex
	events        []*download.Event
	conflictsLeft int
}

func (l *memoryLedger) Record(ctx context.Context, event *download.Event) error {
	l.mu.Lock()
	if l.conflictsLeft > 0 {
		l.conflictsLeft--
		l.mu.Unlock()
		return subscription.ErrConcurrentUpdate
	}
	l.mu.Unlock()

	if err := l.store.DecrementQuota(ctx, event.SubscriptionID(), event.Tier(), 1, event.DownloadedAt()); err != nil {
		return err
	}

	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
	return nil
}

func (l *memoryLedger) ListByUserID(_ context.Context, userID uint, limit int) ([]*download.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*download.Event
	for _, e := range l.events {
		if e.UserID() == userID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (l *memoryLedger) CountSince(_ context.Context, _ time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.events)), nil
}

func (l *memoryLedger) CountBySubscriptionID(_ context.Context, subscriptionID uint) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for _, e := range l.events {
		if e.SubscriptionID() == subscriptionID {
			n++
		}
	}
	return n, nil
}

func (l *memoryLedger) eventCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func testAsset(t *testing.T, sid string, tier asset.Tier, active bool) *asset.Asset {
	t.Helper()
	createdAt := time.Now().UTC()
	a, err := asset.ReconstructAsset(100, sid, "Test Asset", tier, active, createdAt)
	require.NoError(t, err)
	return a
}

func activeRow(userID uint, standardTotal, premiumTotal int) *subRow {
	now := time.Now().UTC()
	return &subRow{
		sid:           "sub_active000001",
		userID:        userID,
		status:        vo.StatusActive,
		startDate:     now.AddDate(0, 0, -1),
		endDate:       now.AddDate(0, 0, 29),
		standardTotal: standardTotal,
		premiumTotal:  premiumTotal,
		version:       1,
	}
}

func newFixture(catalog *fakeCatalog, store *memorySubscriptionStore, ledger *memoryLedger) (*EvaluateAccessUseCase, *RecordDownloadUseCase) {
	evaluator := NewEvaluateAccessUseCase(catalog, store, nopLogger{})
	recorder := NewRecordDownloadUseCase(evaluator, ledger, nopLogger{})
	return evaluator, recorder
}

func TestEvaluateAccessDenials(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
		"ast_retired00001": testAsset(t, "ast_retired00001", asset.TierStandard, false),
		"ast_premium00001": testAsset(t, "ast_premium00001", asset.TierPremium, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 0))
	evaluator, _ := newFixture(catalog, store, &memoryLedger{store: store})

	tests := []struct {
		name       string
		userID     uint
		assetSID   string
		wantReason Reason
	}{
		{"unknown asset", 42, "ast_missing00001", ReasonAssetNotFound},
		{"retired asset", 42, "ast_retired00001", ReasonAssetUnavailable},
		{"no subscription", 99, "ast_standard0001", ReasonNoActiveSubscription},
		{"premium asset without premium quota", 42, "ast_premium00001", ReasonQuotaExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := evaluator.Execute(context.Background(), EvaluateAccessCommand{UserID: tt.userID, AssetSID: tt.assetSID})
			require.NoError(t, err)
			assert.False(t, decision.Allowed)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestEvaluateAccessAllowed(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 5))
	evaluator, _ := newFixture(catalog, store, &memoryLedger{store: store})

	decision, err := evaluator.Execute(context.Background(), EvaluateAccessCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonAllowed, decision.Reason)
	assert.Equal(t, asset.TierStandard, decision.DebitTier)
	assert.Equal(t, "sub_active000001", decision.SubscriptionSID)
	assert.Equal(t, 10, decision.RemainingStandard)
	assert.Equal(t, 5, decision.RemainingPremium)
}

func TestEvaluateAccessStandardFallsBackToPremium(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	row := activeRow(42, 10, 5)
	row.standardUsed = 10
	store.put(1, row)
	evaluator, _ := newFixture(catalog, store, &memoryLedger{store: store})

	decision, err := evaluator.Execute(context.Background(), EvaluateAccessCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, asset.TierPremium, decision.DebitTier)
}

func TestEvaluateAccessCorrectsStaleExpiredStatus(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.staleReads = true
	row := activeRow(42, 10, 0)
	row.endDate = time.Now().UTC().Add(-time.Hour)
	store.put(1, row)
	evaluator, _ := newFixture(catalog, store, &memoryLedger{store: store})

	decision, err := evaluator.Execute(context.Background(), EvaluateAccessCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonSubscriptionExpired, decision.Reason)

	// The stale record was corrected in passing.
	assert.Equal(t, vo.StatusExpired, store.row(1).status)
}

func TestRecordDownloadDebitsAndAppends(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 5))
	ledger := &memoryLedger{store: store}
	_, recorder := newFixture(catalog, store, ledger)

	result, err := recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	require.True(t, result.Decision.Allowed)
	require.NotNil(t, result.Event)

	assert.Equal(t, 9, result.Decision.RemainingStandard)
	assert.Equal(t, 5, result.Decision.RemainingPremium)
	assert.Equal(t, asset.TierStandard, result.Event.Tier())
	assert.Equal(t, uint(42), result.Event.UserID())
	assert.Equal(t, 1, ledger.eventCount())
	assert.Equal(t, 1, store.row(1).standardUsed)
}

func TestRecordDownloadDeniedWithoutSideEffects(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_premium00001": testAsset(t, "ast_premium00001", asset.TierPremium, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 0))
	ledger := &memoryLedger{store: store}
	_, recorder := newFixture(catalog, store, ledger)

	result, err := recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_premium00001"})
	require.NoError(t, err)
	assert.False(t, result.Decision.Allowed)
	assert.Equal(t, ReasonQuotaExhausted, result.Decision.Reason)
	assert.Nil(t, result.Event)
	assert.Equal(t, 0, ledger.eventCount())
	assert.Equal(t, 0, store.row(1).standardUsed)
}

func TestRecordDownloadRetriesOnConflict(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 0))
	ledger := &memoryLedger{store: store, conflictsLeft: 2}
	_, recorder := newFixture(catalog, store, ledger)

	result, err := recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	assert.True(t, result.Decision.Allowed)
	assert.Equal(t, 1, ledger.eventCount())
}

func TestRecordDownloadGivesUpAfterBoundedRetries(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 10, 0))
	ledger := &memoryLedger{store: store, conflictsLeft: debitMaxAttempts}
	_, recorder := newFixture(catalog, store, ledger)

	_, err := recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.ErrorIs(t, err, subscription.ErrConcurrentUpdate)
	assert.Equal(t, 0, ledger.eventCount())
}

type captureNotifier struct {
	mu        sync.Mutex
	userIDs   []uint
	remaining []int
}

func (n *captureNotifier) NotifyLowQuota(_ context.Context, userID uint, remaining int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.userIDs = append(n.userIDs, userID)
	n.remaining = append(n.remaining, remaining)
	return nil
}

func TestRecordDownloadNotifiesOnLowQuota(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 4, 0))
	ledger := &memoryLedger{store: store}
	_, recorder := newFixture(catalog, store, ledger)

	notifier := &captureNotifier{}
	recorder.SetQuotaNotifier(notifier)

	result, err := recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_standard0001"})
	require.NoError(t, err)
	require.True(t, result.Decision.Allowed)

	require.Len(t, notifier.userIDs, 1)
	assert.Equal(t, uint(42), notifier.userIDs[0])
	assert.Equal(t, 3, notifier.remaining[0])
}

// The last download slot must be won by exactly one of N concurrent
// requests; every loser gets a quota denial and the counters never
// overshoot.
func TestRecordDownloadConcurrentLastSlot(t *testing.T) {
	catalog := &fakeCatalog{assets: map[string]*asset.Asset{
		"ast_standard0001": testAsset(t, "ast_standard0001", asset.TierStandard, true),
	}}
	store := newMemorySubscriptionStore()
	store.put(1, activeRow(42, 1, 0))
	ledger := &memoryLedger{store: store}
	_, recorder := newFixture(catalog, store, ledger)

	const workers = 16
	results := make([]*RecordDownloadResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = recorder.Execute(context.Background(), RecordDownloadCommand{UserID: 42, AssetSID: "ast_standard0001"})
		}(i)
	}
	wg.Wait()

	allowed := 0
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if results[i].Decision.Allowed {
			allowed++
		} else {
			assert.Equal(t, ReasonQuotaExhausted, results[i].Decision.Reason)
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, ledger.eventCount())
	row := store.row(1)
	assert.Equal(t, 1, row.standardUsed)
	assert.LessOrEqual(t, row.standardUsed, row.standardTotal)
}
