package middleware

import (
	"strings"

	"tavolo-be/internal/user"
	"tavolo-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// Auth parses the bearer token (cookie first, header fallback) and, when
// valid, attaches the user identity to the request context. Anonymous
// requests pass through; handlers decide whether identity is required.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractAccessToken(c)
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		ctx := utils.SetUserContext(c.Request.Context(), claims.UserID, claims.Email, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireStaff rejects requests without an elevated role.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsStaff(c.Request.Context()) {
			c.AbortWithStatusJSON(403, gin.H{"error": "staff role required"})
			return
		}
		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
