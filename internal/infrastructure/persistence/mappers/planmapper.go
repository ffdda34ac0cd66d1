package mappers

import (
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	"tessera/internal/infrastructure/persistence/models"
)

type PlanMapper interface {
	ToEntity(model *models.PlanModel) (*plan.Plan, error)
	ToModel(entity *plan.Plan) (*models.PlanModel, error)
	ToEntities(models []*models.PlanModel) ([]*plan.Plan, error)
}

type PlanMapperImpl struct{}

func NewPlanMapper() PlanMapper {
	return &PlanMapperImpl{}
}

func (m *PlanMapperImpl) ToEntity(model *models.PlanModel) (*plan.Plan, error) {
	if model == nil {
		return nil, nil
	}

	tier := asset.Tier(model.TierCategory)
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid tier category: %s", model.TierCategory)
	}

	return plan.ReconstructPlan(
		model.ID,
		model.SID,
		model.Name,
		model.DisplayName,
		tier,
		model.DurationDays,
		model.StandardQuota,
		model.PremiumQuota,
		model.PriceCents,
		plan.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *PlanMapperImpl) ToModel(entity *plan.Plan) (*models.PlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.PlanModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		Name:          entity.Name(),
		DisplayName:   entity.DisplayName(),
		TierCategory:  entity.TierCategory().String(),
		DurationDays:  entity.DurationDays(),
		StandardQuota: entity.StandardQuota(),
		PremiumQuota:  entity.PremiumQuota(),
		PriceCents:    entity.PriceCents(),
		Status:        entity.Status().String(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *PlanMapperImpl) ToEntities(planModels []*models.PlanModel) ([]*plan.Plan, error) {
	entities := make([]*plan.Plan, 0, len(planModels))
	for _, model := range planModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map plan %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
