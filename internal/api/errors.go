package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/apperrors"
	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/middleware"
)

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeAccessDenied:
		return http.StatusForbidden
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as the standard error body. Store and internal failures
// are logged and their details withheld from the caller.
func respondError(c *gin.Context, log logger.Logger, err error) {
	code := apperrors.CodeOf(err)
	status := statusFor(code)

	var appErr *apperrors.Error
	if status >= http.StatusInternalServerError || !errors.As(err, &appErr) {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(code)),
			zap.Error(err))
		message := "An unexpected error occurred"
		if status == http.StatusServiceUnavailable {
			message = "Service temporarily unavailable"
		}
		middleware.AbortWithError(c, status, message, nil)
		return
	}

	middleware.AbortWithError(c, status, appErr.Message, appErr.Fields)
}

func badRequest(c *gin.Context, message string, fields map[string]string) {
	middleware.AbortWithError(c, http.StatusBadRequest, message, fields)
}
