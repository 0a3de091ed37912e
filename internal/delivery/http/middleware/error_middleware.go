package middleware

import (
	"errors"
	"net/http"

	"job-tracker-backend/internal/delivery/http/response"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/pkg/apperror"
	"job-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed",
					"path", c.FullPath(),
					"status", appErr.Code,
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal Server Error",
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
