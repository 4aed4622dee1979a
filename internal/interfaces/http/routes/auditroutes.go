package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type AuditRouteConfig struct {
	AuditHandler         *handlers.AuditHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAuditRoutes(engine *gin.Engine, config *AuditRouteConfig) {
	audit := engine.Group("/audit")
	audit.Use(config.AuthMiddleware.RequireAuth())
	{
		// Callers only ever see their own entries; no officer grant needed.
		audit.GET("/logs", config.AuditHandler.Logs)

		audit.GET("/verify",
			config.PermissionMiddleware.RequirePermission(permission.ResourceAudit, permission.ActionVerify),
			config.AuditHandler.Verify)
	}
}
