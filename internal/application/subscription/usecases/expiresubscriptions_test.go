package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
)

func overdueSub(t *testing.T, id uint, userID uint) *subscription.Subscription {
	t.Helper()
	now := time.Now().UTC()
	sub, err := subscription.ReconstructSubscription(
		id, "sub_overdue00001", userID, 3, "Pro", asset.TierPremium,
		vo.StatusActive, now.AddDate(0, 0, -31), now.AddDate(0, 0, -1),
		50, 10, 20, 5, 2999, nil, nil, 4, now, now,
	)
	require.NoError(t, err)
	return sub
}

func TestExpireSubscriptions(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	histRepo := new(mockHistoryRepo)
	notifier := new(mockLifecycleNotifier)

	batch := []*subscription.Subscription{overdueSub(t, 1, 42), overdueSub(t, 2, 43)}
	subRepo.On("FindExpiredBatch", mock.Anything, mock.Anything, 200).Return(batch, nil).Once()
	subRepo.On("TransitionStatus", mock.Anything, uint(1), vo.StatusActive, vo.StatusExpired, (*string)(nil), mock.Anything).Return(true, nil)
	subRepo.On("TransitionStatus", mock.Anything, uint(2), vo.StatusActive, vo.StatusExpired, (*string)(nil), mock.Anything).Return(true, nil)
	histRepo.On("Append", mock.Anything, mock.Anything).Return(nil).Times(2)
	notifier.On("NotifySubscriptionExpired", mock.Anything, uint(42), "Pro").Return(nil)
	notifier.On("NotifySubscriptionExpired", mock.Anything, uint(43), "Pro").Return(nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, histRepo, 200, nopLogger{})
	uc.SetLifecycleNotifier(notifier)

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	subRepo.AssertExpectations(t)
	histRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExpireSubscriptionsAlreadyTransitioned(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	histRepo := new(mockHistoryRepo)

	batch := []*subscription.Subscription{overdueSub(t, 1, 42)}
	subRepo.On("FindExpiredBatch", mock.Anything, mock.Anything, 200).Return(batch, nil).Once()
	subRepo.On("TransitionStatus", mock.Anything, uint(1), vo.StatusActive, vo.StatusExpired, (*string)(nil), mock.Anything).Return(false, nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, histRepo, 200, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	histRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestExpireSubscriptionsNothingToDo(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	histRepo := new(mockHistoryRepo)

	subRepo.On("FindExpiredBatch", mock.Anything, mock.Anything, 200).Return([]*subscription.Subscription{}, nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, histRepo, 200, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestExpireSubscriptionsDrainsFullBatches(t *testing.T) {
	subRepo := new(mockSubscriptionRepo)
	histRepo := new(mockHistoryRepo)

	first := []*subscription.Subscription{overdueSub(t, 1, 42), overdueSub(t, 2, 43)}
	second := []*subscription.Subscription{overdueSub(t, 3, 44)}
	subRepo.On("FindExpiredBatch", mock.Anything, mock.Anything, 2).Return(first, nil).Once()
	subRepo.On("FindExpiredBatch", mock.Anything, mock.Anything, 2).Return(second, nil).Once()
	subRepo.On("TransitionStatus", mock.Anything, mock.Anything, vo.StatusActive, vo.StatusExpired, (*string)(nil), mock.Anything).Return(true, nil)
	histRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	uc := NewExpireSubscriptionsUseCase(subRepo, histRepo, 2, nopLogger{})

	count, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	subRepo.AssertNumberOfCalls(t, "FindExpiredBatch", 2)
}
