// Package http assembles the gin engine: repositories, use cases, handlers,
// and routes are wired here so the CLI entrypoints only deal with process
// lifecycle.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	analyticsUsecases "tessera/internal/application/analytics/usecases"
	assetUsecases "tessera/internal/application/asset/usecases"
	entitlementUsecases "tessera/internal/application/entitlement/usecases"
	identityUsecases "tessera/internal/application/identity/usecases"
	planUsecases "tessera/internal/application/plan/usecases"
	subscriptionUsecases "tessera/internal/application/subscription/usecases"
	"tessera/internal/infrastructure/auth"
	"tessera/internal/infrastructure/cache"
	"tessera/internal/infrastructure/config"
	"tessera/internal/infrastructure/email"
	"tessera/internal/infrastructure/repository"
	"tessera/internal/interfaces/http/handlers"
	"tessera/internal/interfaces/http/middleware"
	"tessera/internal/interfaces/http/routes"
	"tessera/internal/shared/logger"
)

// Router owns the wired HTTP surface plus the use cases shared with the
// background scheduler.
type Router struct {
	engine  *gin.Engine
	sweepUC *subscriptionUsecases.ExpireSubscriptionsUseCase
}

// NewRouter wires the full dependency graph from the open database and redis
// connections.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Router {
	log := logger.NewLogger()

	// Repositories
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	historyRepo := repository.NewSubscriptionHistoryRepository(db)
	planRepo := repository.NewPlanRepository(db)
	assetCatalog := repository.NewAssetCatalog(db)
	userDir := repository.NewUserDirectory(db)
	ledger := repository.NewDownloadLedger(db)

	cachedPlanRepo := cache.NewCachedPlanRepository(planRepo, redisClient, log)
	signupStore := cache.NewRedisSignupSessionStore(
		redisClient,
		time.Duration(cfg.Auth.SignupTTLMinutes)*time.Minute,
		log,
	)

	// Services
	issuer := auth.NewJWTIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessExpMinutes)*time.Minute)
	notificationService := email.NewNotificationService(&cfg.Email, userDir, log)

	// Identity
	beginSignupUC := identityUsecases.NewBeginSignupUseCase(userDir, signupStore, cfg.Auth.BcryptCost, log)
	completeSignupUC := identityUsecases.NewCompleteSignupUseCase(userDir, signupStore, log)
	loginUC := identityUsecases.NewLoginUseCase(userDir, issuer, log)

	// Plans
	createPlanUC := planUsecases.NewCreatePlanUseCase(cachedPlanRepo, log)
	archivePlanUC := planUsecases.NewArchivePlanUseCase(cachedPlanRepo, log)
	listPlansUC := planUsecases.NewListPlansUseCase(cachedPlanRepo, log)

	// Subscriptions
	createSubscriptionUC := subscriptionUsecases.NewCreateSubscriptionUseCase(
		subscriptionRepo, historyRepo, cachedPlanRepo, userDir, log)
	createSubscriptionUC.SetLifecycleNotifier(notificationService)
	cancelSubscriptionUC := subscriptionUsecases.NewCancelSubscriptionUseCase(subscriptionRepo, historyRepo, log)
	listSubscriptionsUC := subscriptionUsecases.NewListSubscriptionsUseCase(subscriptionRepo, log)
	sweepUC := subscriptionUsecases.NewExpireSubscriptionsUseCase(
		subscriptionRepo, historyRepo, cfg.Sweep.BatchSize, log)
	sweepUC.SetLifecycleNotifier(notificationService)

	// Entitlement
	evaluateAccessUC := entitlementUsecases.NewEvaluateAccessUseCase(assetCatalog, subscriptionRepo, log)
	recordDownloadUC := entitlementUsecases.NewRecordDownloadUseCase(evaluateAccessUC, ledger, log)
	recordDownloadUC.SetQuotaNotifier(notificationService)
	listDownloadsUC := entitlementUsecases.NewListDownloadsUseCase(ledger, log)

	// Catalog administration
	registerAssetUC := assetUsecases.NewRegisterAssetUseCase(assetCatalog, log)
	listAssetsUC := assetUsecases.NewListAssetsUseCase(assetCatalog, log)
	setAvailabilityUC := assetUsecases.NewSetAssetAvailabilityUseCase(assetCatalog, log)

	// Analytics
	getSummaryUC := analyticsUsecases.NewGetSummaryUseCase(subscriptionRepo, userDir, log)
	getAnalyticsUC := analyticsUsecases.NewGetAnalyticsUseCase(subscriptionRepo, cachedPlanRepo, ledger, log)
	getUserDetailUC := analyticsUsecases.NewGetUserDetailUseCase(userDir, subscriptionRepo, historyRepo, ledger, log)

	// Handlers
	identityHandler := handlers.NewIdentityHandler(beginSignupUC, completeSignupUC, loginUC)
	planHandler := handlers.NewPlanHandler(createPlanUC, archivePlanUC, listPlansUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(createSubscriptionUC, cancelSubscriptionUC, listSubscriptionsUC)
	downloadHandler := handlers.NewDownloadHandler(evaluateAccessUC, recordDownloadUC, listDownloadsUC)
	assetHandler := handlers.NewAssetHandler(registerAssetUC, listAssetsUC, setAvailabilityUC)
	analyticsHandler := handlers.NewAnalyticsHandler(getSummaryUC, getAnalyticsUC, getUserDetailUC, sweepUC)

	authMiddleware := middleware.NewAuthMiddleware(issuer, log)

	gin.SetMode(ginMode(cfg.Server.Mode))
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(engine, identityHandler)
	routes.SetupPlanRoutes(engine, &routes.PlanRouteConfig{
		PlanHandler:    planHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupSubscriptionRoutes(engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: subscriptionHandler,
		AuthMiddleware:      authMiddleware,
	})
	routes.SetupDownloadRoutes(engine, &routes.DownloadRouteConfig{
		DownloadHandler: downloadHandler,
		AuthMiddleware:  authMiddleware,
	})
	routes.SetupAdminRoutes(engine, &routes.AdminRouteConfig{
		AssetHandler:     assetHandler,
		AnalyticsHandler: analyticsHandler,
		AuthMiddleware:   authMiddleware,
	})

	return &Router{
		engine:  engine,
		sweepUC: sweepUC,
	}
}

// Engine returns the configured gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SweepUseCase exposes the expiry sweep for the background scheduler.
func (r *Router) SweepUseCase() *subscriptionUsecases.ExpireSubscriptionsUseCase {
	return r.sweepUC
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production", "prod":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
