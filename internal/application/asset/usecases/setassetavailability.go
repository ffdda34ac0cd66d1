package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/asset"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
)

type SetAssetAvailabilityCommand struct {
	AssetSID string
	Active   bool
}

// SetAssetAvailabilityUseCase pulls an asset from circulation or restores it.
// Deactivation takes effect on the next entitlement check; downloads already
// recorded are unaffected.
type SetAssetAvailabilityUseCase struct {
	registry asset.Registry
	logger   logger.Interface
}

func NewSetAssetAvailabilityUseCase(registry asset.Registry, logger logger.Interface) *SetAssetAvailabilityUseCase {
	return &SetAssetAvailabilityUseCase{
		registry: registry,
		logger:   logger,
	}
}

func (uc *SetAssetAvailabilityUseCase) Execute(ctx context.Context, cmd SetAssetAvailabilityCommand) error {
	if cmd.AssetSID == "" {
		return apperrors.NewValidationError("asset SID is required")
	}

	if err := uc.registry.SetActive(ctx, cmd.AssetSID, cmd.Active); err != nil {
		if apperrors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to update asset availability", "error", err, "asset_sid", cmd.AssetSID)
		return fmt.Errorf("failed to update asset availability: %w", err)
	}

	uc.logger.Infow("asset availability updated", "asset_sid", cmd.AssetSID, "active", cmd.Active)
	return nil
}
