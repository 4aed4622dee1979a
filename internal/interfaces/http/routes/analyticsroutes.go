package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type AnalyticsRouteConfig struct {
	AnalyticsHandler     *handlers.AnalyticsHandler
	AuthMiddleware       *middleware.AuthMiddleware
	ConsentMiddleware    *middleware.ConsentMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAnalyticsRoutes(engine *gin.Engine, config *AnalyticsRouteConfig) {
	analytics := engine.Group("/analytics")
	analytics.Use(config.AuthMiddleware.RequireAuth())
	{
		// The use case re-checks consent inside its transaction; the gate
		// here rejects early without touching the write path.
		analytics.POST("/events",
			config.ConsentMiddleware.RequireConsent(consent.CategoryAnalytics, consent.ScopeGovAggregated),
			config.AnalyticsHandler.Emit)

		analytics.GET("/summary",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAnalytics, permission.ActionRead),
			config.AnalyticsHandler.Summary)
	}
}
