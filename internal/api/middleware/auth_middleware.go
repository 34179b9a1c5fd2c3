package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resuminator/internal/auth"
	"resuminator/internal/errcode"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": errcode.Unauthenticated})
}

// AuthMiddleware verifies the session token and injects the caller identity
// into the request context. Any verification failure becomes a structured
// 401 response.
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := TokenFromRequest(c)
		if rawToken == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// TokenFromRequest extracts the session token, preferring the cookie the
// login flow sets and falling back to a Bearer header for non-browser
// clients.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && strings.TrimSpace(token) != "" {
		return token
	}

	header := c.GetHeader("Authorization")
	parts := strings.Fields(header)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
