package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"celebrai-backend/pkg/logger"
)

// RequestLogger writes one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}
		switch {
		case status >= 500:
			logger.Log.Error("request", kv...)
		case status >= 400:
			logger.Log.Warn("request", kv...)
		default:
			logger.Log.Info("request", kv...)
		}
	}
}
