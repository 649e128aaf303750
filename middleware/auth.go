package middleware

import (
	"net/http"
	"strings"

	userRepo "appointify/database/repository/user"
	"appointify/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the authenticated user lives on the gin context.
const ContextUserKey = "authUser"

// JWTAuthMiddleware validates the bearer token, checks its hash against the
// Redis session store and then the user record, and puts the full account
// on the context for downstream handlers.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		hash := utils.HashToken(tokenString)

		// Session must still exist; revocation deletes it.
		if _, err := utils.GetAuthSession(utils.GetAuthCacheClient(), hash); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}

		u, err := users.GetByTokenHash(hash)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or user not found"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}

		c.Set(ContextUserKey, u)
		c.Next()
	}
}
