package usecases

import (
	"context"
	"fmt"

	"tessera/internal/domain/asset"
	"tessera/internal/shared/logger"
)

type ListAssetsResult struct {
	Assets []*asset.Asset
}

type ListAssetsUseCase struct {
	registry asset.Registry
	logger   logger.Interface
}

func NewListAssetsUseCase(registry asset.Registry, logger logger.Interface) *ListAssetsUseCase {
	return &ListAssetsUseCase{
		registry: registry,
		logger:   logger,
	}
}

func (uc *ListAssetsUseCase) Execute(ctx context.Context) (*ListAssetsResult, error) {
	assets, err := uc.registry.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list assets", "error", err)
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return &ListAssetsResult{Assets: assets}, nil
}
