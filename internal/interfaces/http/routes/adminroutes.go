package routes

import (
	"github.com/gin-gonic/gin"

	"tessera/internal/domain/user"
	"tessera/internal/interfaces/http/handlers"
	"tessera/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin routes.
type AdminRouteConfig struct {
	AssetHandler     *handlers.AssetHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// SetupAdminRoutes configures the operator surface: catalog management,
// reporting, and the manual expiry sweep.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	admin.Use(cfg.AuthMiddleware.RequireRole(user.RoleAdmin))
	{
		admin.POST("/assets", cfg.AssetHandler.RegisterAsset)
		admin.GET("/assets", cfg.AssetHandler.ListAssets)
		admin.PATCH("/assets/:sid/availability", cfg.AssetHandler.SetAvailability)

		admin.GET("/analytics/summary", cfg.AnalyticsHandler.GetSummary)
		admin.GET("/analytics", cfg.AnalyticsHandler.GetAnalytics)
		admin.GET("/users/:id", cfg.AnalyticsHandler.GetUserDetail)

		admin.POST("/sweep", cfg.AnalyticsHandler.RunExpirySweep)
	}
}
