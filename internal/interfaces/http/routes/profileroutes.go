package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type ProfileRouteConfig struct {
	ProfileHandler *handlers.ProfileHandler
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupProfileRoutes(engine *gin.Engine, config *ProfileRouteConfig) {
	profiles := engine.Group("/profiles")
	profiles.Use(config.AuthMiddleware.RequireAuth())
	{
		profiles.GET("/me", config.ProfileHandler.GetMe)
		// Direct edits are allowed; the sync gateway is the canonical write
		// path and applies the same last-write-wins rules.
		profiles.PATCH("/me", config.ProfileHandler.UpdateMe)
	}

	export := engine.Group("/export")
	export.Use(config.AuthMiddleware.RequireAuth())
	{
		// Consent is checked inside the use case so a revocation between
		// request and read cannot leak a stale export.
		export.GET("/profile", config.ProfileHandler.Export)
	}

	users := engine.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.DELETE("/me", config.UserHandler.EraseMe)
	}
}
