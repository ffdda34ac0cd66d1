package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/entitlement/usecases"
	"tessera/internal/domain/download"
	"tessera/internal/interfaces/http/middleware"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type DownloadHandler struct {
	evaluateAccessUC *usecases.EvaluateAccessUseCase
	recordDownloadUC *usecases.RecordDownloadUseCase
	listDownloadsUC  *usecases.ListDownloadsUseCase
	logger           logger.Interface
}

func NewDownloadHandler(
	evaluateAccessUC *usecases.EvaluateAccessUseCase,
	recordDownloadUC *usecases.RecordDownloadUseCase,
	listDownloadsUC *usecases.ListDownloadsUseCase,
) *DownloadHandler {
	return &DownloadHandler{
		evaluateAccessUC: evaluateAccessUC,
		recordDownloadUC: recordDownloadUC,
		listDownloadsUC:  listDownloadsUC,
		logger:           logger.NewLogger(),
	}
}

type RecordDownloadRequest struct {
	AssetSID string `json:"asset_sid" binding:"required"`
}

type decisionResponse struct {
	Allowed           bool   `json:"allowed"`
	Reason            string `json:"reason"`
	SubscriptionSID   string `json:"subscription_sid,omitempty"`
	DebitTier         string `json:"debit_tier,omitempty"`
	RemainingStandard int    `json:"remaining_standard"`
	RemainingPremium  int    `json:"remaining_premium"`
}

type downloadEventResponse struct {
	SID          string    `json:"sid"`
	AssetSID     string    `json:"asset_sid"`
	Tier         string    `json:"tier"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

func decisionToResponse(d *usecases.Decision) decisionResponse {
	return decisionResponse{
		Allowed:           d.Allowed,
		Reason:            string(d.Reason),
		SubscriptionSID:   d.SubscriptionSID,
		DebitTier:         d.DebitTier.String(),
		RemainingStandard: d.RemainingStandard,
		RemainingPremium:  d.RemainingPremium,
	}
}

func eventToResponse(e *download.Event) downloadEventResponse {
	return downloadEventResponse{
		SID:          e.SID(),
		AssetSID:     e.AssetSID(),
		Tier:         e.Tier().String(),
		DownloadedAt: e.DownloadedAt(),
	}
}

// CheckAccess answers whether the caller may download an asset, without
// consuming quota.
func (h *DownloadHandler) CheckAccess(c *gin.Context) {
	decision, err := h.evaluateAccessUC.Execute(c.Request.Context(), usecases.EvaluateAccessCommand{
		UserID:   middleware.CallerID(c),
		AssetSID: c.Param("asset_sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, decisionToResponse(decision))
}

// RecordDownload consumes one download from the caller's quota and appends
// the ledger event. A denied decision is a 403 with the deny reason, not an
// error.
func (h *DownloadHandler) RecordDownload(c *gin.Context) {
	var req RecordDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.recordDownloadUC.Execute(c.Request.Context(), usecases.RecordDownloadCommand{
		UserID:   middleware.CallerID(c),
		AssetSID: req.AssetSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Decision.Allowed {
		c.JSON(http.StatusForbidden, utils.APIResponse{
			Success: false,
			Data:    decisionToResponse(result.Decision),
		})
		return
	}

	utils.CreatedResponse(c, gin.H{
		"decision": decisionToResponse(result.Decision),
		"event":    eventToResponse(result.Event),
	})
}

func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := h.listDownloadsUC.Execute(c.Request.Context(), usecases.ListDownloadsCommand{
		UserID: middleware.CallerID(c),
		Limit:  limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]downloadEventResponse, 0, len(result.Events))
	for _, e := range result.Events {
		out = append(out, eventToResponse(e))
	}
	utils.OKResponse(c, out)
}
