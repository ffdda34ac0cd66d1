package download

import (
	"context"
	"time"
)

// Ledger persists download events. Record debits the event's tier counter on
// the event's subscription and appends the event in one atomic unit: when
// the debit guard fails the event is not written and no counter moves.
//
// Record returns subscription.ErrQuotaExhausted, subscription.ErrNotActive
// or subscription.ErrConcurrentUpdate when the debit cannot be committed.
type Ledger interface {
	Record(ctx context.Context, event *Event) error

	ListByUserID(ctx context.Context, userID uint, limit int) ([]*Event, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountBySubscriptionID(ctx context.Context, subscriptionID uint) (int64, error)
}
