package routes

import (
	"github.com/gin-gonic/gin"

	"tessera/internal/interfaces/http/handlers"
)

// SetupAuthRoutes configures signup and login routes.
func SetupAuthRoutes(engine *gin.Engine, h *handlers.IdentityHandler) {
	auth := engine.Group("/auth")
	{
		auth.POST("/signup", h.BeginSignup)
		auth.POST("/signup/complete", h.CompleteSignup)
		auth.POST("/login", h.Login)
	}
}
