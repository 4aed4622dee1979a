package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// PermissionChecker answers whether a role may perform an action on a
// resource. Grouping links in the policy store let senior officer roles
// inherit junior grants.
type PermissionChecker interface {
	Enforce(subject string, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PermissionChecker
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PermissionChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission allows the request when any of the caller's roles holds
// the (resource, action) grant. Roles were loaded by RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := utils.GetUserRoles(c)
		if len(roles) == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		for _, role := range roles {
			allowed, err := m.enforcer.Enforce(role, resource, action)
			if err != nil {
				m.logger.Errorw("permission check failed",
					"error", err, "role", role, "resource", resource, "action", action)
				utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
				c.Abort()
				return
			}
			if allowed {
				c.Next()
				return
			}
		}

		m.logger.Warnw("permission denied",
			"user_sid", utils.GetUserID(c), "roles", roles, "resource", resource, "action", action)
		utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
		c.Abort()
	}
}

// RequireRole allows the request when the caller holds any of the given
// roles directly. Unlike RequirePermission this ignores the rank hierarchy.
func (m *PermissionMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held := utils.GetUserRoles(c)
		if len(held) == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		heldSet := make(map[string]bool, len(held))
		for _, role := range held {
			heldSet[role] = true
		}
		for _, required := range roles {
			if heldSet[required] {
				c.Next()
				return
			}
		}

		m.logger.Warnw("role check failed",
			"user_sid", utils.GetUserID(c), "roles", held, "required_roles", roles)
		utils.ErrorResponse(c, http.StatusForbidden, fmt.Sprintf("required role: %v", roles))
		c.Abort()
	}
}
