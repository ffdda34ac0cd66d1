package mappers

import (
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/download"
	"tessera/internal/infrastructure/persistence/models"
)

type DownloadEventMapper interface {
	ToEntity(model *models.DownloadEventModel) (*download.Event, error)
	ToModel(entity *download.Event) (*models.DownloadEventModel, error)
	ToEntities(models []*models.DownloadEventModel) ([]*download.Event, error)
}

type DownloadEventMapperImpl struct{}

func NewDownloadEventMapper() DownloadEventMapper {
	return &DownloadEventMapperImpl{}
}

func (m *DownloadEventMapperImpl) ToEntity(model *models.DownloadEventModel) (*download.Event, error) {
	if model == nil {
		return nil, nil
	}
	return download.ReconstructEvent(
		model.ID,
		model.SID,
		model.UserID,
		model.SubscriptionID,
		model.AssetID,
		model.AssetSID,
		asset.Tier(model.Tier),
		model.DownloadedAt,
	)
}

func (m *DownloadEventMapperImpl) ToModel(entity *download.Event) (*models.DownloadEventModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.DownloadEventModel{
		ID:             entity.ID(),
		SID:            entity.SID(),
		UserID:         entity.UserID(),
		SubscriptionID: entity.SubscriptionID(),
		AssetID:        entity.AssetID(),
		AssetSID:       entity.AssetSID(),
		Tier:           entity.Tier().String(),
		DownloadedAt:   entity.DownloadedAt(),
	}, nil
}

func (m *DownloadEventMapperImpl) ToEntities(eventModels []*models.DownloadEventModel) ([]*download.Event, error) {
	entities := make([]*download.Event, 0, len(eventModels))
	for _, model := range eventModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map download event %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
