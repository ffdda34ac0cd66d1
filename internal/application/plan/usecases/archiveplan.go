package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/plan"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

type ArchivePlanCommand struct {
	PlanSID string
}

// ArchivePlanUseCase withdraws a plan from sale. Subscriptions already sold
// keep the quota snapshot they were created with, so archiving never touches
// subscribers.
type ArchivePlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewArchivePlanUseCase(planRepo plan.Repository, logger logger.Interface) *ArchivePlanUseCase {
	return &ArchivePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *ArchivePlanUseCase) Execute(ctx context.Context, cmd ArchivePlanCommand) error {
	if cmd.PlanSID == "" {
		return apperrors.NewValidationError("plan SID is required")
	}

	p, err := uc.planRepo.GetBySID(ctx, cmd.PlanSID)
	if err != nil {
		uc.logger.Errorw("failed to get plan", "error", err, "plan_sid", cmd.PlanSID)
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil {
		return apperrors.NewNotFoundError("plan not found")
	}

	if err := p.Archive(); err != nil {
		return fmt.Errorf("failed to archive plan: %w", err)
	}
	if err := uc.planRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to persist archived plan", "error", err, "plan_id", p.ID())
		return fmt.Errorf("failed to persist archived plan: %w", err)
	}

	uc.logger.Infow("plan archived", "plan_id", p.ID(), "plan_sid", p.SID())
	return nil
}
