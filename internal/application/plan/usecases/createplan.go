package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

type CreatePlanCommand struct {
	Name          string
	DisplayName   string
	TierCategory  string
	DurationDays  int
	StandardQuota int
	PremiumQuota  int
	PriceCents    int64
}

type CreatePlanResult struct {
	Plan *plan.Plan
}

type CreatePlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewCreatePlanUseCase(planRepo plan.Repository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*CreatePlanResult, error) {
	tier, err := asset.ParseTier(cmd.TierCategory)
	if err != nil {
		return nil, fmt.Errorf("invalid tier category: %w", err)
	}

	sid, err := id.GenerateWithPrefix(id.PrefixPlan, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan SID: %w", err)
	}

	p, err := plan.NewPlan(sid, cmd.Name, cmd.DisplayName, tier, cmd.DurationDays, cmd.StandardQuota, cmd.PremiumQuota, cmd.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	if err := uc.planRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to persist plan", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to persist plan: %w", err)
	}

	uc.logger.Infow("plan created",
		"plan_id", p.ID(),
		"plan_sid", p.SID(),
		"name", p.Name(),
		"tier_category", p.TierCategory(),
	)
	return &CreatePlanResult{Plan: p}, nil
}
