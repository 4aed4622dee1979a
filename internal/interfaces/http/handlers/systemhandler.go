package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/version"
)

// SystemHandler serves the unauthenticated liveness and version endpoints.
type SystemHandler struct {
	minAppVersion string
}

func NewSystemHandler(minAppVersion string) *SystemHandler {
	return &SystemHandler{minAppVersion: minAppVersion}
}

// HealthCheck handles GET /health.
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sahay",
	})
}

// Version handles GET /version. Clients sending X-App-Version are told
// whether their build is below the supported floor.
func (h *SystemHandler) Version(c *gin.Context) {
	resp := gin.H{
		"version":         version.Current,
		"min_app_version": h.minAppVersion,
	}

	if appVersion := c.GetHeader(constants.HeaderXAppVersion); appVersion != "" && h.minAppVersion != "" {
		resp["update_required"] = version.HasNewerVersion(appVersion, h.minAppVersion)
	}

	c.JSON(http.StatusOK, resp)
}
