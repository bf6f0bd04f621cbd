// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"mindhaven/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's
// identity (userID, role) in the request context. Token issuance belongs
// to the auth service; this side only verifies.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Next()
	}
}
