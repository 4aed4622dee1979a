package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type SyncRouteConfig struct {
	SyncHandler    *handlers.SyncHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupSyncRoutes(engine *gin.Engine, config *SyncRouteConfig) {
	sync := engine.Group("/sync")
	sync.Use(config.AuthMiddleware.RequireAuth())
	{
		// Gin reads ":batch" as a path parameter, which still matches the
		// documented POST /sync/events:batch custom-method path.
		sync.POST("/events:batch", config.SyncHandler.SubmitBatch)
	}
}
