package mappers

import (
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/subscription"
	vo "tessera/internal/domain/subscription/valueobjects"
	"tessera/internal/infrastructure/persistence/models"
)

type HistoryMapper interface {
	ToEntity(model *models.SubscriptionHistoryModel) (*subscription.HistoryEntry, error)
	ToModel(entity *subscription.HistoryEntry) (*models.SubscriptionHistoryModel, error)
	ToEntities(models []*models.SubscriptionHistoryModel) ([]*subscription.HistoryEntry, error)
}

type HistoryMapperImpl struct{}

func NewHistoryMapper() HistoryMapper {
	return &HistoryMapperImpl{}
}

func (m *HistoryMapperImpl) ToEntity(model *models.SubscriptionHistoryModel) (*subscription.HistoryEntry, error) {
	if model == nil {
		return nil, nil
	}
	return subscription.ReconstructHistoryEntry(
		model.ID,
		model.UserID,
		model.SubscriptionID,
		model.PlanName,
		asset.Tier(model.PlanTier),
		vo.Status(model.Status),
		model.CreatedAt,
	)
}

func (m *HistoryMapperImpl) ToModel(entity *subscription.HistoryEntry) (*models.SubscriptionHistoryModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.SubscriptionHistoryModel{
		ID:             entity.ID(),
		UserID:         entity.UserID(),
		SubscriptionID: entity.SubscriptionID(),
		PlanName:       entity.PlanName(),
		PlanTier:       entity.PlanTier().String(),
		Status:         entity.Status().String(),
		CreatedAt:      entity.CreatedAt(),
	}, nil
}

func (m *HistoryMapperImpl) ToEntities(historyModels []*models.SubscriptionHistoryModel) ([]*subscription.HistoryEntry, error) {
	entities := make([]*subscription.HistoryEntry, 0, len(historyModels))
	for _, model := range historyModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map history entry %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
