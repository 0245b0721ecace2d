package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/apperror"
	"celebrai-backend/pkg/auth"
	"celebrai-backend/pkg/logger"
)

// AuthMiddleware requires a Supabase access token and stores the user id and
// email in the gin context.
func AuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Error(apperror.Unauthorized("Authorization header required"))
			c.Abort()
			return
		}

		claims, err := verifier.Parse(tokenString)
		if err != nil {
			logger.Log.Debug("Token validation failed", "error", err)
			c.Error(apperror.Unauthorized("Invalid token"))
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated subject set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// FunctionAuth guards the public function route the way the Supabase gateway
// does: the project anon key as apikey or bearer, or any verified project JWT.
// Rejections use the function's {error} body.
func FunctionAuth(anonKey string, verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := bearerToken(c)
		if keyMatches(c.GetHeader("apikey"), anonKey) || keyMatches(bearer, anonKey) {
			c.Next()
			return
		}
		if bearer != "" && verifier != nil {
			if _, err := verifier.ParseRole(bearer); err == nil {
				c.Next()
				return
			}
		}

		logger.Log.Warn("Function call without valid credentials", "ip", c.ClientIP(), "path", c.FullPath())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authorization"})
	}
}

func bearerToken(c *gin.Context) string {
	return strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
}

func keyMatches(got, want string) bool {
	return got != "" && want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
