package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/models"
	"github.com/akukesepian/backend/internal/security"
)

// CurrentUserKey is where Auth stores the authenticated models.User.
const CurrentUserKey = "current_user"

// UserLoader is the slice of the user repository the middleware needs.
type UserLoader interface {
	GetByID(ctx context.Context, id models.UserID) (models.User, error)
}

// Auth validates the bearer token and loads the user behind it. The
// token alone is not trusted for the admin flag; handlers read it off
// the freshly loaded user.
func Auth(cfg config.SecurityConfig, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), models.UserID(claims.Subject))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Akun telah dinonaktifkan",
			})
			return
		}

		c.Set(CurrentUserKey, user)

		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Akses khusus admin",
			})
			return
		}

		c.Next()
	}
}

// UserFrom pulls the authenticated user Auth stored on the context.
func UserFrom(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Token tidak valid",
	})
}
