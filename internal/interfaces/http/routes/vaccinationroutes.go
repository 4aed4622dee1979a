package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type VaccinationRouteConfig struct {
	VaccinationHandler *handlers.VaccinationHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupVaccinationRoutes(engine *gin.Engine, config *VaccinationRouteConfig) {
	vax := engine.Group("/vax")
	vax.Use(config.AuthMiddleware.RequireAuth())
	{
		vax.POST("/records", config.VaccinationHandler.RecordVaccination)
		vax.GET("/next-due", config.VaccinationHandler.NextDue)
	}
}
