package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"celebrai-backend/internal/domain"
)

// RequestIDKey is the gin context key read by the response envelope.
const RequestIDKey = string(domain.KeyRequestID)

const requestIDHeader = "X-Request-ID"

// RequestID propagates a caller-supplied X-Request-ID or mints a uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
