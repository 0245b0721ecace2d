package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const functionAllowHeaders = "authorization, x-client-info, apikey, content-type"

// FunctionCORS mirrors the Supabase edge-function contract: every response
// carries a wildcard origin and any OPTIONS request is answered with 200
// before the handler runs.
func FunctionCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", functionAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// AdminCORS restricts the dashboard API to the configured frontend, plus
// localhost dev servers outside release mode.
func AdminCORS(frontendURL, mode string) gin.HandlerFunc {
	allowed := map[string]bool{}
	if frontendURL != "" {
		allowed[strings.TrimRight(frontendURL, "/")] = true
	}
	dev := mode != gin.ReleaseMode

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if allowed[origin] {
				return true
			}
			return dev && (strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:"))
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID", "apikey", "x-client-info"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
