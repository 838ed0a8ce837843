package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledgerspace/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging tags every request with a UUID, echoes it back in the
// X-Request-ID header, and logs method, path, status, latency and client
// IP once the handler chain finishes. Health probes are not logged.
func RequestLogging() gin.HandlerFunc {
	httpLog := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.NewString()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		if c.FullPath() == "/api/health" {
			return
		}

		httpLog.Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// RequestID returns the request ID set by RequestLogging, or an empty
// string when the middleware is not installed.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
