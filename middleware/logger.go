package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger under "logger" and logs each request on completion.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		logger := base.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Set("logger", logger)
		c.Set("requestID", requestID)

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if sess, ok := CurrentSession(c); ok {
			fields = append(fields, zap.String("user", sess.User.ID))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("Request failed", fields...)
		case len(c.Errors) > 0:
			logger.Warn("Request completed with errors", append(fields, zap.String("errors", c.Errors.String()))...)
		default:
			logger.Info("Request completed", fields...)
		}
	}
}
