package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type DashboardRouteConfig struct {
	DashboardHandler     *handlers.DashboardHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDashboardRoutes(engine *gin.Engine, config *DashboardRouteConfig) {
	dashboard := engine.Group("/dashboard")
	dashboard.Use(config.AuthMiddleware.RequireAuth())

	read := config.PermissionMiddleware.RequirePermission(permission.ResourceDashboards, permission.ActionRead)
	{
		dashboard.GET("/summary", read, config.DashboardHandler.Summary)
		dashboard.GET("/timeseries", read, config.DashboardHandler.TimeSeries)
		dashboard.GET("/heatmap", read, config.DashboardHandler.Heatmap)
		dashboard.GET("/categories", read, config.DashboardHandler.Categories)
		dashboard.GET("/demographics", read, config.DashboardHandler.Demographics)
		dashboard.GET("/top-regions", read, config.DashboardHandler.TopRegions)

		dashboard.POST("/materialized-views/refresh",
			config.PermissionMiddleware.RequirePermission(permission.ResourceDashboards, permission.ActionRefresh),
			config.DashboardHandler.RefreshViews)
		dashboard.GET("/materialized-views/stats", read, config.DashboardHandler.ViewStats)

		dashboard.GET("/mv/triage-counts", read, config.DashboardHandler.TriageCounts)
		dashboard.GET("/mv/complaint-categories", read, config.DashboardHandler.ComplaintCategories)
		dashboard.GET("/mv/symptom-heatmap", read, config.DashboardHandler.SymptomHeatmap)
		dashboard.GET("/mv/sla-breaches", read, config.DashboardHandler.SLABreaches)
	}
}
