package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"howisyourday/auth"
)

// RequireAdmin gates admin-only routes. Every failure mode (missing header,
// bad signature, expired token, non-admin user) answers the same generic 401
// so callers can't probe which check failed.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil || !claims.IsAdmin {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Unauthorized",
	})
}
