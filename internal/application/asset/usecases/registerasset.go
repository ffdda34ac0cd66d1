package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/asset"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/id"
	"tessera/internal/shared/logger"
)

type RegisterAssetCommand struct {
	Title string
	Tier  string
}

type RegisterAssetResult struct {
	Asset *asset.Asset
}

// RegisterAssetUseCase adds a catalog entry. The wider marketplace owns asset
// content; the engine only tracks the tier and availability it needs for
// entitlement decisions.
type RegisterAssetUseCase struct {
	registry asset.Registry
	logger   logger.Interface
}

func NewRegisterAssetUseCase(registry asset.Registry, logger logger.Interface) *RegisterAssetUseCase {
	return &RegisterAssetUseCase{
		registry: registry,
		logger:   logger,
	}
}

func (uc *RegisterAssetUseCase) Execute(ctx context.Context, cmd RegisterAssetCommand) (*RegisterAssetResult, error) {
	tier, err := asset.ParseTier(cmd.Tier)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	sid, err := id.GenerateWithPrefix(id.PrefixAsset, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate asset SID: %w", err)
	}

	a, err := asset.NewAsset(sid, cmd.Title, tier)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.registry.Create(ctx, a); err != nil {
		uc.logger.Errorw("failed to register asset", "error", err, "asset_sid", sid)
		return nil, fmt.Errorf("failed to register asset: %w", err)
	}

	uc.logger.Infow("asset registered", "asset_sid", a.SID(), "tier", a.Tier())
	return &RegisterAssetResult{Asset: a}, nil
}
