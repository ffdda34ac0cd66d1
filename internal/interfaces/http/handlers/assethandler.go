package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/asset/usecases"
	"tessera/internal/domain/asset"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type AssetHandler struct {
	registerAssetUC   *usecases.RegisterAssetUseCase
	listAssetsUC      *usecases.ListAssetsUseCase
	setAvailabilityUC *usecases.SetAssetAvailabilityUseCase
	logger            logger.Interface
}

func NewAssetHandler(
	registerAssetUC *usecases.RegisterAssetUseCase,
	listAssetsUC *usecases.ListAssetsUseCase,
	setAvailabilityUC *usecases.SetAssetAvailabilityUseCase,
) *AssetHandler {
	return &AssetHandler{
		registerAssetUC:   registerAssetUC,
		listAssetsUC:      listAssetsUC,
		setAvailabilityUC: setAvailabilityUC,
		logger:            logger.NewLogger(),
	}
}

type RegisterAssetRequest struct {
	Title string `json:"title" binding:"required"`
	Tier  string `json:"tier" binding:"required,oneof=standard premium"`
}

type SetAssetAvailabilityRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type assetResponse struct {
	SID       string    `json:"sid"`
	Title     string    `json:"title"`
	Tier      string    `json:"tier"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func assetToResponse(a *asset.Asset) assetResponse {
	return assetResponse{
		SID:       a.SID(),
		Title:     a.Title(),
		Tier:      a.Tier().String(),
		Active:    a.IsActive(),
		CreatedAt: a.CreatedAt(),
	}
}

func (h *AssetHandler) RegisterAsset(c *gin.Context) {
	var req RegisterAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.registerAssetUC.Execute(c.Request.Context(), usecases.RegisterAssetCommand{
		Title: req.Title,
		Tier:  req.Tier,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, assetToResponse(result.Asset), "asset registered")
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	result, err := h.listAssetsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]assetResponse, 0, len(result.Assets))
	for _, a := range result.Assets {
		out = append(out, assetToResponse(a))
	}
	utils.OKResponse(c, out)
}

func (h *AssetHandler) SetAvailability(c *gin.Context) {
	var req SetAssetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	if err := h.setAvailabilityUC.Execute(c.Request.Context(), usecases.SetAssetAvailabilityCommand{
		AssetSID: c.Param("sid"),
		Active:   *req.Active,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"active": *req.Active})
}
