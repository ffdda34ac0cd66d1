package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/plan/usecases"
	"tessera/internal/domain/plan"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC  *usecases.CreatePlanUseCase
	archivePlanUC *usecases.ArchivePlanUseCase
	listPlansUC   *usecases.ListPlansUseCase
	logger        logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	archivePlanUC *usecases.ArchivePlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:  createPlanUC,
		archivePlanUC: archivePlanUC,
		listPlansUC:   listPlansUC,
		logger:        logger.NewLogger(),
	}
}

type CreatePlanRequest struct {
	Name          string `json:"name" binding:"required"`
	DisplayName   string `json:"display_name"`
	TierCategory  string `json:"tier_category" binding:"required,oneof=standard premium"`
	DurationDays  int    `json:"duration_days" binding:"required,min=1"`
	StandardQuota int    `json:"standard_quota" binding:"min=0"`
	PremiumQuota  int    `json:"premium_quota" binding:"min=0"`
	PriceCents    int64  `json:"price_cents" binding:"min=0"`
}

type planResponse struct {
	SID           string    `json:"sid"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"display_name"`
	TierCategory  string    `json:"tier_category"`
	DurationDays  int       `json:"duration_days"`
	StandardQuota int       `json:"standard_quota"`
	PremiumQuota  int       `json:"premium_quota"`
	PriceCents    int64     `json:"price_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func planToResponse(p *plan.Plan) planResponse {
	return planResponse{
		SID:           p.SID(),
		Name:          p.Name(),
		DisplayName:   p.DisplayName(),
		TierCategory:  p.TierCategory().String(),
		DurationDays:  p.DurationDays(),
		StandardQuota: p.StandardQuota(),
		PremiumQuota:  p.PremiumQuota(),
		PriceCents:    p.PriceCents(),
		Status:        string(p.Status()),
		CreatedAt:     p.CreatedAt(),
	}
}

func plansToResponse(plans []*plan.Plan) []planResponse {
	out := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, planToResponse(p))
	}
	return out
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:          req.Name,
		DisplayName:   req.DisplayName,
		TierCategory:  req.TierCategory,
		DurationDays:  req.DurationDays,
		StandardQuota: req.StandardQuota,
		PremiumQuota:  req.PremiumQuota,
		PriceCents:    req.PriceCents,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, planToResponse(result.Plan), "plan created")
}

func (h *PlanHandler) ArchivePlan(c *gin.Context) {
	if err := h.archivePlanUC.Execute(c.Request.Context(), usecases.ArchivePlanCommand{
		PlanSID: c.Param("sid"),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{"archived": true})
}

// ListPlans serves the public plan listing. Archived plans are only included
// for administrators asking for them.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	result, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansCommand{
		IncludeArchived: includeArchived,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, plansToResponse(result.Plans))
}
