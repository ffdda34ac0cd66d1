package usecases

import "context"

// LifecycleNotifier delivers subscription lifecycle mail. All deliveries are
// best effort: a failed send is logged and never fails the operation that
// triggered it.
type LifecycleNotifier interface {
	NotifySubscriptionActivated(ctx context.Context, userID uint, planName string) error
	NotifySubscriptionExpired(ctx context.Context, userID uint, planName string) error
}
