package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/plan"
	"tessera/internal/shared/logger"
)

type ListPlansCommand struct {
	// IncludeArchived also returns plans no longer for sale.
	IncludeArchived bool
}

type ListPlansResult struct {
	Plans []*plan.Plan
}

type ListPlansUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, cmd ListPlansCommand) (*ListPlansResult, error) {
	var (
		plans []*plan.Plan
		err   error
	)
	if cmd.IncludeArchived {
		plans, err = uc.planRepo.List(ctx)
	} else {
		plans, err = uc.planRepo.ListActive(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return &ListPlansResult{Plans: plans}, nil
}
