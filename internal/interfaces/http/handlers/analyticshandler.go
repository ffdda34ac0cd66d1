package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/analytics/usecases"
	subusecases "tessera/internal/application/subscription/usecases"
	apperrors "tessera/internal/shared/errors"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type AnalyticsHandler struct {
	getSummaryUC    *usecases.GetSummaryUseCase
	getAnalyticsUC  *usecases.GetAnalyticsUseCase
	getUserDetailUC *usecases.GetUserDetailUseCase
	expireUC        *subusecases.ExpireSubscriptionsUseCase
	logger          logger.Interface
}

func NewAnalyticsHandler(
	getSummaryUC *usecases.GetSummaryUseCase,
	getAnalyticsUC *usecases.GetAnalyticsUseCase,
	getUserDetailUC *usecases.GetUserDetailUseCase,
	expireUC *subusecases.ExpireSubscriptionsUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		getSummaryUC:    getSummaryUC,
		getAnalyticsUC:  getAnalyticsUC,
		getUserDetailUC: getUserDetailUC,
		expireUC:        expireUC,
		logger:          logger.NewLogger(),
	}
}

func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	result, err := h.getSummaryUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	periodDays, err := strconv.Atoi(c.DefaultQuery("period_days", "30"))
	if err != nil || periodDays < 1 {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("period_days must be a positive integer"))
		return
	}

	result, err := h.getAnalyticsUC.Execute(c.Request.Context(), usecases.GetAnalyticsCommand{
		PeriodDays: periodDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

func (h *AnalyticsHandler) GetUserDetail(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || userID == 0 {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid user ID"))
		return
	}

	result, err := h.getUserDetailUC.Execute(c.Request.Context(), usecases.GetUserDetailCommand{
		UserID: uint(userID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, result)
}

// RunExpirySweep triggers an expiry pass outside the scheduler, for operators
// who do not want to wait for the next tick.
func (h *AnalyticsHandler) RunExpirySweep(c *gin.Context) {
	transitioned, err := h.expireUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.OKResponse(c, gin.H{"transitioned": transitioned})
}
