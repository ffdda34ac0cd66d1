package routes

import (
	"github.com/gin-gonic/gin"

	"tessera/internal/interfaces/http/handlers"
	"tessera/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupSubscriptionRoutes configures subscription routes.
func SetupSubscriptionRoutes(engine *gin.Engine, cfg *SubscriptionRouteConfig) {
	subs := engine.Group("/subscriptions")
	subs.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subs.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subs.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subs.POST("/:sid/cancel", cfg.SubscriptionHandler.CancelSubscription)
	}
}
