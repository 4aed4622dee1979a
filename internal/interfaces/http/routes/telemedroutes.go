package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type TelemedRouteConfig struct {
	TelemedHandler       *handlers.TelemedHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTelemedRoutes(engine *gin.Engine, config *TelemedRouteConfig) {
	tele := engine.Group("/tele")
	tele.Use(config.AuthMiddleware.RequireAuth())
	{
		tele.POST("/requests", config.TelemedHandler.CreateRequest)
		tele.PATCH("/requests/:id",
			config.PermissionMiddleware.RequirePermission(permission.ResourceTeleRequests, permission.ActionUpdate),
			config.TelemedHandler.UpdateRequest)
	}

	prescriptions := engine.Group("/prescriptions")
	prescriptions.Use(config.AuthMiddleware.RequireAuth())
	{
		prescriptions.POST("",
			config.PermissionMiddleware.RequirePermission(permission.ResourcePrescriptions, permission.ActionCreate),
			config.TelemedHandler.CreatePrescription)
	}
}
