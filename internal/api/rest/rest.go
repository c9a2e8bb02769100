package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-raffle/internal/api/middleware"
)

// RouteConfig holds the middleware configuration of the routes
type RouteConfig struct {
	Auth          middleware.AuthConfig
	WebhookSecret string
	RateLimit     gin.HandlerFunc
}

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, cfg RouteConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Raffle endpoints (public read access, rate limited)
		raffles := v1.Group("/raffles")
		if cfg.RateLimit != nil {
			raffles.Use(cfg.RateLimit)
		}
		raffles.GET("", handler.ListRaffles)
		raffles.GET("/:id", handler.GetRaffle)
		raffles.GET("/:id/winners", handler.GetWinners)
		raffles.GET("/:id/verification", handler.GetVerification)

		// Indexer webhook (requires the shared secret header)
		v1.POST("/webhooks/goldsky", middleware.WebhookSecret(cfg.WebhookSecret), handler.ReceiveWebhook)

		// Admin endpoints (requires authentication)
		admin := v1.Group("/admin", middleware.Auth(cfg.Auth))
		admin.POST("/raffle-types/:type/reconcile", handler.TriggerReconcile)
		admin.POST("/raffles/:id/jobs/:kind", handler.ReissueJob)
	}
}
