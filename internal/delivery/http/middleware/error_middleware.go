package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"celebrai-backend/internal/delivery/http/response"
	"celebrai-backend/pkg/apperror"
	"celebrai-backend/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "path", c.FullPath(), "request_id", c.GetString(RequestIDKey), "error", err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// never expose internal error details to clients
		logger.Log.Error("Internal Server Error", "path", c.FullPath(), "request_id", c.GetString(RequestIDKey), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
