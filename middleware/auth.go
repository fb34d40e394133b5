package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/services"
)

// Context keys set by RequireSignin.
const (
	UserIDKey = "userID"
	RoleKey   = "userRole"
)

// SessionCookie is the cookie the signed token is persisted in at signin.
const SessionCookie = "t"

// RequireSignin verifies the session token from the Authorization header or
// the session cookie and stores the subject user id and role in the request
// context.
func RequireSignin(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// AdminOnly rejects requests whose token role is not admin. Must run after
// RequireSignin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt(RoleKey) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access only"})
			return
		}
		c.Next()
	}
}

// SelfOnly rejects requests whose token subject does not equal the named path
// parameter. Must run after RequireSignin.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param(param) != c.GetString(UserIDKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}
