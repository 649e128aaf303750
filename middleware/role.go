package middleware

import (
	"net/http"

	"appointify/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user placed on the context by
// JWTAuthMiddleware, or nil when the route is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	u, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return u
}

// RequireRole gates a route group to the given roles. It must run after
// JWTAuthMiddleware.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, role := range allowed {
			if u.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
