package subscription

import "errors"

var (
	// ErrNotFound is returned when no subscription matches the lookup.
	ErrNotFound = errors.New("subscription not found")

	// ErrQuotaExhausted is a business-rule deny: the selected quota counter
	// has no remaining downloads. Never retried.
	ErrQuotaExhausted = errors.New("download quota exhausted")

	// ErrNotActive is returned when a debit is attempted against a
	// subscription that is not active or past its end date.
	ErrNotActive = errors.New("subscription is not active")

	// ErrInvalidTransition is returned when the status state machine rejects
	// a transition, e.g. cancelled -> active.
	ErrInvalidTransition = errors.New("invalid subscription status transition")

	// ErrConcurrentUpdate is returned when a conditional update lost the race
	// to a concurrent writer. Callers recover with a bounded re-read/retry.
	ErrConcurrentUpdate = errors.New("concurrent subscription update conflict")
)
