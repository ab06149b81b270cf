package middleware

import (
	"net/http"
	"strings"

	"proconecta/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware authenticates the bearer token and checks it against
// the user's active session in the auth cache. On success the user ID is
// placed in the context under "userID".
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}

		userID, err := utils.VerifyToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "insufficient authorization"})
			return
		}

		ok, err := utils.CheckAuthSession(utils.GetAuthCacheClient(), userID, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication backend unavailable"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or revoked"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// ActorID returns the authenticated user ID set by JWTAuthMiddleware.
func ActorID(c *gin.Context) string {
	return c.GetString("userID")
}
