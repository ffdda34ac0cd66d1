package mappers

import (
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/infrastructure/persistence/models"
)

type AssetMapper interface {
	ToEntity(model *models.AssetModel) (*asset.Asset, error)
	ToModel(entity *asset.Asset) (*models.AssetModel, error)
	ToEntities(models []models.AssetModel) ([]*asset.Asset, error)
}

type AssetMapperImpl struct{}

func NewAssetMapper() AssetMapper {
	return &AssetMapperImpl{}
}

func (m *AssetMapperImpl) ToEntity(model *models.AssetModel) (*asset.Asset, error) {
	if model == nil {
		return nil, nil
	}
	tier := asset.Tier(model.Tier)
	if !tier.Valid() {
		return nil, fmt.Errorf("invalid asset tier: %s", model.Tier)
	}
	return asset.ReconstructAsset(model.ID, model.SID, model.Title, tier, model.Active, model.CreatedAt)
}

func (m *AssetMapperImpl) ToEntities(rows []models.AssetModel) ([]*asset.Asset, error) {
	entities := make([]*asset.Asset, 0, len(rows))
	for i := range rows {
		entity, err := m.ToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func (m *AssetMapperImpl) ToModel(entity *asset.Asset) (*models.AssetModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.AssetModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		Title:     entity.Title(),
		Tier:      entity.Tier().String(),
		Active:    entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}
