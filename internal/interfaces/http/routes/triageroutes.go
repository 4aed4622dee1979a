package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type TriageRouteConfig struct {
	TriageHandler  *handlers.TriageHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupTriageRoutes(engine *gin.Engine, config *TriageRouteConfig) {
	triage := engine.Group("/triage")
	triage.Use(config.AuthMiddleware.RequireAuth())
	{
		triage.POST("/sessions", config.TriageHandler.CreateSession)
		// Ownership is enforced in the use case.
		triage.GET("/sessions/:id", config.TriageHandler.GetSession)
	}
}
