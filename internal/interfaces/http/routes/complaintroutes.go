package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/permission"
	"github.com/sahay-inc/sahay/internal/interfaces/http/handlers"
	"github.com/sahay-inc/sahay/internal/interfaces/http/middleware"
)

type ComplaintRouteConfig struct {
	ComplaintHandler     *handlers.ComplaintHandler
	AnchorHandler        *handlers.AnchorHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	IntakeRateLimiter    *middleware.RateLimiter
}

func SetupComplaintRoutes(engine *gin.Engine, config *ComplaintRouteConfig) {
	complaints := engine.Group("/complaints")
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Anonymous filing is allowed, so intake takes OptionalAuth plus an
		// IP rate limit instead of RequireAuth.
		complaints.POST("",
			config.AuthMiddleware.OptionalAuth(),
			config.IntakeRateLimiter.Limit(),
			config.ComplaintHandler.Create)
		complaints.GET("",
			config.AuthMiddleware.RequireAuth(),
			config.ComplaintHandler.List)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		complaints.POST("/escalation/run",
			config.AuthMiddleware.RequireAuth(),
			config.PermissionMiddleware.RequirePermission(permission.ResourceEscalations, permission.ActionRun),
			config.ComplaintHandler.RunEscalation)

		// Using PATCH for state changes as per RESTful best practices
		complaints.PATCH("/:id/status",
			config.AuthMiddleware.RequireAuth(),
			config.PermissionMiddleware.RequirePermission(permission.ResourceComplaints, permission.ActionReview),
			config.ComplaintHandler.UpdateStatus)
		complaints.POST("/:id/close",
			config.AuthMiddleware.RequireAuth(),
			config.PermissionMiddleware.RequirePermission(permission.ResourceComplaints, permission.ActionReview),
			config.ComplaintHandler.Close)
		complaints.GET("/:id/history",
			config.AuthMiddleware.RequireAuth(),
			config.ComplaintHandler.History)
		complaints.POST("/:id/evidence",
			config.AuthMiddleware.RequireAuth(),
			config.ComplaintHandler.UploadEvidence)
		complaints.GET("/:id/anchors",
			config.AuthMiddleware.RequireAuth(),
			config.AnchorHandler.ComplaintAnchors)

		// Generic parameterized route (must come LAST)
		complaints.GET("/:id",
			config.AuthMiddleware.RequireAuth(),
			config.ComplaintHandler.Get)
	}
}
