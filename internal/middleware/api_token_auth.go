package middleware

import (
	"github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header gate terminals send their token in.
const APIKeyHeader = "x-api-key"

// APITokenAuth is a middleware that authenticates requests using API tokens.
// Requests without a valid key continue unauthenticated so AuthMiddleware can
// try the bearer token.
func APITokenAuth(tokenSvc services.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" {
			c.Next()
			return
		}

		user, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			GetLoggerFromContext(c).Warn("API token rejected", "error", err)
			c.Next()
			return
		}

		setAuthenticatedUser(c, user.UserID, AuthMethodAPIToken)
		c.Next()
	}
}
