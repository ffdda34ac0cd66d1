package subscription

import (
	"context"
	"time"

	"tessera/internal/domain/asset"
	vo "tessera/internal/domain/subscription/valueobjects"
)

// Repository handles subscription persistence. All mutating operations are
// single-record conditional updates; no operation spans multiple
// subscriptions. Read methods return (nil, nil) when no record matches.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)

	// FindActiveByUserID returns the user's active subscription whose end
	// date is after now, or (nil, nil). At most one subscription per user is
	// active at a time.
	FindActiveByUserID(ctx context.Context, userID uint, now time.Time) (*Subscription, error)
	ListByUserID(ctx context.Context, userID uint) ([]*Subscription, error)

	// FindExpiredBatch returns up to limit subscriptions still marked active
	// whose end date has passed, ordered by end date. Used by the sweeper to
	// scan in bounded chunks.
	FindExpiredBatch(ctx context.Context, now time.Time, limit int) ([]*Subscription, error)

	// TransitionStatus applies a compare-and-set status transition: the
	// write only lands if the record's current status still equals from.
	// Returns false (with nil error) when the guard did not match, which the
	// caller resolves by re-reading the record.
	TransitionStatus(ctx context.Context, id uint, from, to vo.Status, reason *string, at time.Time) (bool, error)

	// DecrementQuota atomically consumes amount downloads from the tier
	// counter, guarded by used+amount <= total, status = active and
	// end_date > now evaluated at write time. Returns ErrQuotaExhausted or
	// ErrNotActive when the guard fails, classified from the current row.
	DecrementQuota(ctx context.Context, id uint, tier asset.Tier, amount int, now time.Time) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status vo.Status) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	SumAmountCentsSince(ctx context.Context, since time.Time) (int64, error)
	ActiveCountByTier(ctx context.Context, now time.Time) (map[asset.Tier]int64, error)
	ActiveCountByPlan(ctx context.Context, now time.Time) (map[uint]int64, error)
	CountDistinctUsers(ctx context.Context) (int64, error)
	CountDistinctActiveUsers(ctx context.Context, now time.Time) (int64, error)
}

// HistoryRepository persists append-only subscription history snapshots.
type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	ListByUserID(ctx context.Context, userID uint, limit int) ([]*HistoryEntry, error)

	// CountByUserID counts the user's creation snapshots (entries with
	// status active), i.e. how many subscriptions the user has ever held.
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}
