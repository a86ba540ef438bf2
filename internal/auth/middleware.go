package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "auth.user_id"

// Middleware resolves the acting profile from "Authorization: Bearer <token>".
// Websocket clients cannot set headers from browsers, so ?token= is accepted as well.
func Middleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if raw == "" {
			raw = c.Query("token")
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization is required"})
			return
		}

		userID, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the profile id set by Middleware, or "" when unauthenticated.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
