package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahay-inc/sahay/internal/domain/consent"
	"github.com/sahay-inc/sahay/internal/shared/logger"
	"github.com/sahay-inc/sahay/internal/shared/utils"
)

type ConsentMiddleware struct {
	checker consent.Checker
	logger  logger.Interface
}

func NewConsentMiddleware(checker consent.Checker, logger logger.Interface) *ConsentMiddleware {
	return &ConsentMiddleware{
		checker: checker,
		logger:  logger,
	}
}

// RequireConsent blocks the request unless the caller currently grants
// category+scope under the active consent document version. Consent state
// is read live on every request and never cached.
func (m *ConsentMiddleware) RequireConsent(category consent.Category, scope consent.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := utils.GetCallerID(c)
		if callerID == 0 {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		if err := m.checker.Require(c.Request.Context(), callerID, category, scope); err != nil {
			m.logger.Debugw("consent gate closed",
				"user_sid", utils.GetUserID(c), "category", category, "scope", scope)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}
