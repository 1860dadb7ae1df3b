package middleware

import (
	"net/http"
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userContextKey = "currentUser"

// Unauthorized writes the single authentication failure the API exposes.
// Missing token, malformed token, expired token and unknown subject all look
// the same to the client.
func Unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

// Authenticate validates the bearer token and resolves its subject to a
// persisted user, which is stored in the request context.
func Authenticate(tokens *service.TokenManager, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			Unauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			Unauthorized(c)
			return
		}

		subject, err := tokens.Validate(parts[1])
		if err != nil {
			Unauthorized(c)
			return
		}

		user, err := users.GetUserByUsername(subject)
		if err != nil {
			logger.Error("Failed to resolve token subject", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}
		if user == nil {
			// Token subject no longer exists. Same 401 as a bad token.
			Unauthorized(c)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil on
// routes that never ran it.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RoleAllowed reports whether the user holds one of the allowed roles. A
// user without a role is never allowed.
func RoleAllowed(user *models.User, allowedRoles ...string) bool {
	if user == nil || user.Role == nil {
		return false
	}
	for _, name := range allowedRoles {
		if user.Role.Name == name {
			return true
		}
	}
	return false
}

// RequireRole rejects the request with 403 unless the authenticated user
// holds one of the allowed roles. Must run after Authenticate.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RoleAllowed(CurrentUser(c), allowedRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operation not permitted"})
			return
		}
		c.Next()
	}
}
