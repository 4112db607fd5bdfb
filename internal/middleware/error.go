package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipebook/backend/internal/logger"
	"github.com/pageza/recipebook/backend/internal/types"
)

// AbortWithError writes the standard error body and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Message:   message,
		Errors:    fields,
	})
}

// Recovery turns a panic in a handler into a logged 500 response.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"))
				AbortWithError(c, http.StatusInternalServerError, "Internal Server Error", nil)
			}
		}()
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if actor, ok := ActorFrom(c); ok {
			fields = append(fields, zap.String("actor", actor.ID))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("request failed", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}
