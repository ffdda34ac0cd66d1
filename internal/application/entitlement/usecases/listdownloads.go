package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/download"
	"tessera/internal/shared/logger"
)

const defaultDownloadPageSize = 50

type ListDownloadsCommand struct {
	UserID uint
	Limit  int
}

type ListDownloadsResult struct {
	Events []*download.Event
}

// ListDownloadsUseCase returns a user's download history, newest first.
type ListDownloadsUseCase struct {
	ledger download.Ledger
	logger logger.Interface
}

func NewListDownloadsUseCase(ledger download.Ledger, logger logger.Interface) *ListDownloadsUseCase {
	return &ListDownloadsUseCase{
		ledger: ledger,
		logger: logger,
	}
}

func (uc *ListDownloadsUseCase) Execute(ctx context.Context, cmd ListDownloadsCommand) (*ListDownloadsResult, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	limit := cmd.Limit
	if limit <= 0 || limit > defaultDownloadPageSize {
		limit = defaultDownloadPageSize
	}

	events, err := uc.ledger.ListByUserID(ctx, cmd.UserID, limit)
	if err != nil {
		uc.logger.Errorw("failed to list downloads", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to list downloads: %w", err)
	}

	return &ListDownloadsResult{Events: events}, nil
}
