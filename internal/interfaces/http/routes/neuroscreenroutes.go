package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type NeuroscreenRouteConfig struct {
	NeuroscreenHandler *handlers.NeuroscreenHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ConsentMiddleware  *middleware.ConsentMiddleware
}

func SetupNeuroscreenRoutes(engine *gin.Engine, config *NeuroscreenRouteConfig) {
	neuroscreen := engine.Group("/neuroscreen")
	neuroscreen.Use(config.AuthMiddleware.RequireAuth())
	{
		// Screening data is sensitive; recording one requires an explicit
		// neuro consent receipt.
		neuroscreen.POST("/results",
			config.ConsentMiddleware.RequireConsent(consent.CategoryNeuro, consent.ScopeClinician),
			config.NeuroscreenHandler.SubmitScreening)

		// Ownership is enforced in the use case.
		neuroscreen.GET("/results/:id", config.NeuroscreenHandler.GetResult)
	}
}
