package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/user"
	"github.com/sahay-inc/sahay/internal/shared/constants"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

// TokenAuthenticator resolves a presented bearer token to its account.
// Expired, revoked, and unknown tokens all fail identically.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, plainToken string) (*user.User, *user.AccessToken, error)
}

// RoleLoader loads the role slugs assigned to a user.
type RoleLoader interface {
	GetRoles(ctx context.Context, userID uint) ([]string, error)
}

type AuthMiddleware struct {
	tokens TokenAuthenticator
	roles  RoleLoader
	logger logger.Interface
}

func NewAuthMiddleware(tokens TokenAuthenticator, roles RoleLoader, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		roles:  roles,
		logger: logger,
	}
}

// RequireAuth resolves the bearer token and stores the caller's identity and
// roles in the request context. Requests without a valid token are rejected.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		if !m.authenticate(c, token) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid bearer token is
// presented and lets the request through anonymously otherwise. Anonymous
// complaint submission relies on this.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			m.authenticate(c, token)
		}
		c.Next()
	}
}

// authenticate resolves the token and populates the context. Returns false
// when the token does not map to an active account.
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	account, _, err := m.tokens.Authenticate(c.Request.Context(), token)
	if err != nil {
		m.logger.Debugw("token authentication failed", "error", err)
		return false
	}

	roles, err := m.roles.GetRoles(c.Request.Context(), account.ID())
	if err != nil {
		m.logger.Errorw("failed to load user roles", "user_sid", account.SID(), "error", err)
		return false
	}

	c.Set(constants.ContextKeyUserID, account.SID())
	c.Set(constants.ContextKeyCallerID, account.ID())
	c.Set(constants.ContextKeyUserRoles, roles)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
