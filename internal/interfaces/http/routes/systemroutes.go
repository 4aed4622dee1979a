package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
)

type SystemRouteConfig struct {
	SystemHandler *handlers.SystemHandler
}

func SetupSystemRoutes(engine *gin.Engine, config *SystemRouteConfig) {
	engine.GET("/health", config.SystemHandler.HealthCheck)
	engine.GET("/version", config.SystemHandler.Version)
}
