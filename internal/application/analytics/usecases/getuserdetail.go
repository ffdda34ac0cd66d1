package usecases

import (
	"context"
	"fmt"
	"time"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/download"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/domain/user"
	"tessera/internal/shared/biztime"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

// recentDownloadLimit caps the download history returned per user.
const recentDownloadLimit = 10

type GetUserDetailCommand struct {
	UserID uint
}

type CurrentPlan struct {
	SubscriptionSID   string
	PlanName          string
	PlanTier          asset.Tier
	Status            vo.Status
	EndDate           time.Time
	RemainingStandard int
	RemainingPremium  int
}

type UserDetailResult struct {
	UserSID string
	Email   string
	Name    string

	// CurrentPlan is nil when the user has no usable subscription.
	CurrentPlan *CurrentPlan

	// TotalSubscriptions counts creation snapshots in the history, i.e.
	// every subscription the user ever held.
	TotalSubscriptions int64

	// ActiveSubscriptions is 0 or 1; a user holds at most one active
	// subscription at a time.
	ActiveSubscriptions int64

	RecentDownloads []*download.Event
}

type GetUserDetailUseCase struct {
	userDir          user.Directory
	subscriptionRepo subscription.Repository
	historyRepo      subscription.HistoryRepository
	ledger           download.Ledger
	logger           logger.Interface
}

func NewGetUserDetailUseCase(
	userDir user.Directory,
	subscriptionRepo subscription.Repository,
	historyRepo subscription.HistoryRepository,
	ledger download.Ledger,
	logger logger.Interface,
) *GetUserDetailUseCase {
	return &GetUserDetailUseCase{
		userDir:          userDir,
		subscriptionRepo: subscriptionRepo,
		historyRepo:      historyRepo,
		ledger:           ledger,
		logger:           logger,
	}
}

func (uc *GetUserDetailUseCase) Execute(ctx context.Context, cmd GetUserDetailCommand) (*UserDetailResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	u, err := uc.userDir.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	result := &UserDetailResult{
		UserSID: u.SID(),
		Email:   u.Email(),
		Name:    u.Name(),
	}

	now := biztime.NowUTC()
	sub, err := uc.subscriptionRepo.FindActiveByUserID(ctx, cmd.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find active subscription: %w", err)
	}
	if sub != nil && sub.IsUsable(now) {
		result.ActiveSubscriptions = 1
		result.CurrentPlan = &CurrentPlan{
			SubscriptionSID:   sub.SID(),
			PlanName:          sub.PlanName(),
			PlanTier:          sub.PlanTier(),
			Status:            sub.EffectiveStatus(now),
			EndDate:           sub.EndDate(),
			RemainingStandard: sub.Remaining(asset.TierStandard),
			RemainingPremium:  sub.Remaining(asset.TierPremium),
		}
	}

	if result.TotalSubscriptions, err = uc.historyRepo.CountByUserID(ctx, cmd.UserID); err != nil {
		return nil, fmt.Errorf("failed to count subscription history: %w", err)
	}
	if result.RecentDownloads, err = uc.ledger.ListByUserID(ctx, cmd.UserID, recentDownloadLimit); err != nil {
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}

	return result, nil
}
