package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey      = contextKey("logger")
	userIDKey         = contextKey("userID")
	authMethodKey     = contextKey("authMethod")
	localeKey         = contextKey("locale")
	localeExplicitKey = contextKey("localeExplicit")
)

// Auth methods recorded by the authentication middlewares.
const (
	AuthMethodJWT      = "jwt"
	AuthMethodAPIToken = "api_token"
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	return UserIDFromCtx(c.Request.Context())
}

// UserIDFromCtx retrieves the authenticated user ID from a standard context.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// setAuthenticatedUser stores userID and the auth method on both the Gin and
// the request context, and enriches the request logger.
func setAuthenticatedUser(c *gin.Context, userID, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(string(authMethodKey), method)

	ctx := WithUserID(c.Request.Context(), userID)
	logger := GetLoggerFromCtx(ctx).With("user_id", userID, "auth_method", method)
	ctx = WithLogger(ctx, logger)
	c.Set(string(loggerCtxKey), logger)
	c.Request = c.Request.WithContext(ctx)
}
