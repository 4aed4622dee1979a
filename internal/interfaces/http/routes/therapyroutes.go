package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type TherapyRouteConfig struct {
	TherapyHandler       *handlers.TherapyHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTherapyRoutes(engine *gin.Engine, config *TherapyRouteConfig) {
	therapy := engine.Group("/therapy")
	therapy.Use(config.AuthMiddleware.RequireAuth())
	{
		// Authoring and pack building are clinician operations; browsing
		// the catalogue is open to any authenticated user.
		therapy.POST("/modules",
			config.PermissionMiddleware.RequirePermission(permission.ResourceTherapyModules, permission.ActionManage),
			config.TherapyHandler.CreateModule)
		therapy.GET("/modules", config.TherapyHandler.ListModules)
		therapy.POST("/modules/:id/pack",
			config.PermissionMiddleware.RequirePermission(permission.ResourceTherapyModules, permission.ActionManage),
			config.TherapyHandler.GeneratePack)
	}
}
