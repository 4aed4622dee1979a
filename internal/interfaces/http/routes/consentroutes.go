package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type ConsentRouteConfig struct {
	ConsentHandler *handlers.ConsentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupConsentRoutes(engine *gin.Engine, config *ConsentRouteConfig) {
	consents := engine.Group("/consents")
	consents.Use(config.AuthMiddleware.RequireAuth())
	{
		consents.POST("", config.ConsentHandler.Grant)
		consents.GET("", config.ConsentHandler.List)
	}
}
