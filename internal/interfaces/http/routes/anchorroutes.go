package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type AnchorRouteConfig struct {
	AnchorHandler        *handlers.AnchorHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAnchorRoutes(engine *gin.Engine, config *AnchorRouteConfig) {
	anchors := engine.Group("/anchors")
	anchors.Use(config.AuthMiddleware.RequireAuth())
	{
		// Specific paths BEFORE parameterized ones.
		anchors.POST("/retry",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAnchors, permission.ActionRetry),
			config.AnchorHandler.Retry)

		anchors.GET("/:id/verify",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAnchors, permission.ActionVerify),
			config.AnchorHandler.Verify)
	}
}
