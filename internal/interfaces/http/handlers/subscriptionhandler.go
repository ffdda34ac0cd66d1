package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tessera/internal/application/subscription/usecases"
	"tessera/internal/domain/subscription"
	"tessera/internal/interfaces/http/middleware"
	"tessera/internal/shared/biztime"
	"tessera/internal/shared/logger"
	"tessera/internal/shared/utils"
)

type SubscriptionHandler struct {
	createSubscriptionUC *usecases.CreateSubscriptionUseCase
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase
	listSubscriptionsUC  *usecases.ListSubscriptionsUseCase
	logger               logger.Interface
}

func NewSubscriptionHandler(
	createSubscriptionUC *usecases.CreateSubscriptionUseCase,
	cancelSubscriptionUC *usecases.CancelSubscriptionUseCase,
	listSubscriptionsUC *usecases.ListSubscriptionsUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createSubscriptionUC: createSubscriptionUC,
		cancelSubscriptionUC: cancelSubscriptionUC,
		listSubscriptionsUC:  listSubscriptionsUC,
		logger:               logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	PlanSID string `json:"plan_sid" binding:"required"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type subscriptionResponse struct {
	SID           string     `json:"sid"`
	PlanName      string     `json:"plan_name"`
	PlanTier      string     `json:"plan_tier"`
	Status        string     `json:"status"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	StandardTotal int        `json:"standard_total"`
	StandardUsed  int        `json:"standard_used"`
	PremiumTotal  int        `json:"premium_total"`
	PremiumUsed   int        `json:"premium_used"`
	AmountCents   int64      `json:"amount_cents"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  *string    `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func subscriptionToResponse(sub *subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		SID:           sub.SID(),
		PlanName:      sub.PlanName(),
		PlanTier:      sub.PlanTier().String(),
		Status:        string(sub.EffectiveStatus(biztime.NowUTC())),
		StartDate:     sub.StartDate(),
		EndDate:       sub.EndDate(),
		StandardTotal: sub.StandardTotal(),
		StandardUsed:  sub.StandardUsed(),
		PremiumTotal:  sub.PremiumTotal(),
		PremiumUsed:   sub.PremiumUsed(),
		AmountCents:   sub.AmountCents(),
		CancelledAt:   sub.CancelledAt(),
		CancelReason:  sub.CancelReason(),
		CreatedAt:     sub.CreatedAt(),
	}
}

// CreateSubscription activates a subscription for the caller. It is invoked
// after payment settles; payment processing itself lives outside the engine.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	result, err := h.createSubscriptionUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		UserID:  middleware.CallerID(c),
		PlanSID: req.PlanSID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, subscriptionToResponse(result.Subscription), "subscription activated")
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, 400, "invalid request body")
		return
	}

	// Admins may cancel any subscription; regular callers only their own.
	callerID := middleware.CallerID(c)
	if middleware.CallerIsAdmin(c) {
		callerID = 0
	}

	result, err := h.cancelSubscriptionUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID:          callerID,
		SubscriptionSID: c.Param("sid"),
		Reason:          req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, subscriptionToResponse(result.Subscription))
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	result, err := h.listSubscriptionsUC.Execute(c.Request.Context(), usecases.ListSubscriptionsCommand{
		UserID: middleware.CallerID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(result.Subscriptions))
	for _, sub := range result.Subscriptions {
		out = append(out, subscriptionToResponse(sub))
	}
	utils.OKResponse(c, out)
}
