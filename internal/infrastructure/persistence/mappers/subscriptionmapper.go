package mappers

import (
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.Status(model.Status)
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", model.Status)
	}
	tier := asset.Tier(model.PlanTier)
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid plan tier: %s", model.PlanTier)
	}

	return subscription.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		model.PlanID,
		model.PlanName,
		tier,
		status,
		model.StartDate,
		model.EndDate,
		model.StandardTotal,
		model.StandardUsed,
		model.PremiumTotal,
		model.PremiumUsed,
		model.AmountCents,
		model.CancelledAt,
		model.CancelReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		UserID:        entity.UserID(),
		PlanID:        entity.PlanID(),
		PlanName:      entity.PlanName(),
		PlanTier:      entity.PlanTier().String(),
		Status:        entity.Status().String(),
		StartDate:     entity.StartDate(),
		EndDate:       entity.EndDate(),
		StandardTotal: entity.StandardTotal(),
		StandardUsed:  entity.StandardUsed(),
		PremiumTotal:  entity.PremiumTotal(),
		PremiumUsed:   entity.PremiumUsed(),
		AmountCents:   entity.AmountCents(),
		CancelledAt:   entity.CancelledAt(),
		CancelReason:  entity.CancelReason(),
		Version:       entity.Version(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *SubscriptionMapperImpl) ToEntities(subModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map subscription %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
