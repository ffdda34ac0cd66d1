package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tessera/internal/domain/asset"
	"tessera/internal/infrastructure/persistence/mappers"
	"tessera/internal/infrastructure/persistence/models"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

// AssetCatalog implements asset.Catalog against the local assets table. The
// wider marketplace owns asset metadata; the entitlement engine only reads
// tier and availability from its replicated copy.
type AssetCatalog struct {
	db     *gorm.DB
	mapper mappers.AssetMapper
	logger logger.Interface
}

func NewAssetCatalog(db *gorm.DB) *AssetCatalog {
	return &AssetCatalog{
		db:     db,
		mapper: mappers.NewAssetMapper(),
		logger: logger.NewLogger().With("component", "repository.assetcatalog"),
	}
}

func (r *AssetCatalog) Lookup(ctx context.Context, sid string) (*asset.Asset, error) {
	var model models.AssetModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up asset: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

// List returns every catalog entry, newest first.
func (r *AssetCatalog) List(ctx context.Context) ([]*asset.Asset, error) {
	var rows []models.AssetModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return r.mapper.ToEntities(rows)
}

// SetActive flips the availability flag for an asset.
func (r *AssetCatalog) SetActive(ctx context.Context, sid string, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.AssetModel{}).
		Where("sid = ?", sid).
		Update("active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update asset availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("asset not found")
	}
	return nil
}

// Create registers an asset in the catalog.
func (r *AssetCatalog) Create(ctx context.Context, a *asset.Asset) error {
	model, err := r.mapper.ToModel(a)
	if err != nil {
		return fmt.Errorf("failed to map asset: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set asset ID: %w", err)
	}
	return nil
}
