package routes

import (
	"github.com/gin-gonic/gin"

	"tessera/internal/domain/user"
	"tessera/internal/interfaces/http/handlers"
	"tessera/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler    *handlers.PlanHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	plans := engine.Group("/plans")
	{
		// Public listing of plans for sale
		plans.GET("", cfg.PlanHandler.ListPlans)

		// Admin-only write operations
		plansAdmin := plans.Group("")
		plansAdmin.Use(cfg.AuthMiddleware.RequireAuth())
		plansAdmin.Use(cfg.AuthMiddleware.RequireRole(user.RoleAdmin))
		{
			plansAdmin.POST("", cfg.PlanHandler.CreatePlan)
			plansAdmin.POST("/:sid/archive", cfg.PlanHandler.ArchivePlan)
		}
	}
}
