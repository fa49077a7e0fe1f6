package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/logger"
)

// Logging writes an access log record for every request.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, path, status and duration. Errors attached to the gin
// context by handlers are logged with their full cause.
func (l *Logging) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		switch {
		case status >= 500:
			l.logger.Error("HTTP request failed", append(args, "error", c.Errors.String())...)
		case len(c.Errors) > 0:
			l.logger.Info("HTTP request rejected", append(args, "error", c.Errors.Last().Error())...)
		default:
			l.logger.Info("HTTP request completed", args...)
		}
	}
}
