package routes

import (
	"github.com/gin-gonic/gin"

	"tessera/internal/interfaces/http/handlers"
	"tessera/internal/interfaces/http/middleware"
)

// DownloadRouteConfig holds dependencies for download routes.
type DownloadRouteConfig struct {
	DownloadHandler *handlers.DownloadHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// SetupDownloadRoutes configures entitlement and download routes.
func SetupDownloadRoutes(engine *gin.Engine, cfg *DownloadRouteConfig) {
	downloads := engine.Group("/downloads")
	downloads.Use(cfg.AuthMiddleware.RequireAuth())
	{
		downloads.GET("/check/:asset_sid", cfg.DownloadHandler.CheckAccess)
		downloads.POST("", cfg.DownloadHandler.RecordDownload)
		downloads.GET("", cfg.DownloadHandler.ListDownloads)
	}
}
