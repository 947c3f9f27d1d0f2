package middleware

import (
	"net/http"
	"strings"

	"laundrilo-be/internal/httpx"
	"laundrilo-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Gin context keys for the authenticated caller.
const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
	UserRoleKey  = "userRole"
)

// Authenticate parses the bearer token when present and stashes the
// claims; it never rejects on its own so public routes can share it.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Authenticate stored valid claims.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UserIDKey); !ok {
			httpx.Error(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the caller holds the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(UserRoleKey)
		if !ok {
			httpx.Error(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if role != string(user.RoleAdmin) {
			httpx.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated account id.
func CurrentUserID(c *gin.Context) (int, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get(UserRoleKey)
	return role == string(user.RoleAdmin)
}
