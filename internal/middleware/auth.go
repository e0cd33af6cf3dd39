package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unitly-be/internal/jwt"
)

// ContextUserID is the gin context key holding the authenticated user's UUID.
const ContextUserID = "user_id"

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}
