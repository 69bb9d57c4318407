package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Recipes      service.IRecipeService
	Descriptions service.IDescriptionService
	Images       service.IImageService
	Dashboard    service.IDashboardService
	// AILimiter may be nil, which disables rate limiting.
	AILimiter *middleware.RateLimiter
}

// HealthCheck reports whether the database answers a ping.
func HealthCheck(recipes service.IRecipeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := recipes.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"message":  "Cookbook API is running",
			"database": "ok",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	health := HealthCheck(svc.Recipes)
	router.GET("/health", health)
	router.GET("/api/health", health)

	v1 := router.Group("/api/v1")
	NewRecipeHandler(svc.Recipes).RegisterRoutes(v1)
	NewAIHandler(svc.Descriptions, svc.Images, svc.AILimiter).RegisterRoutes(v1)
	NewDashboardHandler(svc.Dashboard).RegisterRoutes(v1)

	router.NoRoute(middleware.NotFound())
}
