package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/shared/constants"
)

// RequestMeta carries per-request client metadata recorded alongside
// audit entries and sync batches.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	DeviceID  string
	RequestID string
}

// ExtractRequestMeta collects client metadata from the request. The device ID
// comes from the X-Device-ID header set by the mobile client; it is empty for
// browser-originated dashboard traffic.
func ExtractRequestMeta(c *gin.Context) RequestMeta {
	meta := RequestMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		DeviceID:  c.GetHeader(constants.HeaderXDeviceID),
	}
	if rid, ok := c.Get(constants.ContextKeyRequestID); ok {
		if s, ok := rid.(string); ok {
			meta.RequestID = s
		}
	}
	return meta
}

// GetUserID returns the authenticated user SID stored by the auth middleware,
// or an empty string when the request is unauthenticated.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetCallerID returns the authenticated user's internal ID stored by the
// auth middleware, or zero when the request is unauthenticated.
func GetCallerID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyCallerID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUserRoles returns the authenticated user's roles stored by the auth middleware.
func GetUserRoles(c *gin.Context) []string {
	if v, ok := c.Get(constants.ContextKeyUserRoles); ok {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}

// HasRole reports whether the authenticated user carries the given role.
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetUserRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}
