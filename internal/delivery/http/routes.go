package http

import (
	"github.com/gin-gonic/gin"
	"github.com/valuecompare/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerMinute > 0 && cfg.RateLimit.Burst > 0 {
		v1.Use(RateLimitMiddleware(NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)))
	}
	{
		v1.GET("/units", handler.ListUnits)
		v1.POST("/compare", handler.Compare)
		v1.POST("/labels/parse", handler.ParseLabel)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handler.CreateSession)
			sessions.GET("/:id", handler.GetSession)
			sessions.DELETE("/:id", handler.DeleteSession)
			sessions.POST("/:id/items", handler.AddItem)
			sessions.DELETE("/:id/items", handler.ClearItems)
			sessions.POST("/:id/compare", handler.CompareSession)
			sessions.POST("/:id/demo", handler.LoadDemo)
		}
	}

	return router
}
