package middleware

import (
	"time"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/gin-gonic/gin"
)

// Logging writes one structured line per request. Server errors log at
// error level, client errors at warn, the rest at debug.
func Logging(logger logging.Logger) gin.HandlerFunc {
	logger = logging.OrNop(logger)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Latency(time.Since(start)),
		}
		if id := GetRequestID(c); id != "" {
			fields = append(fields, logging.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logging.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Debug("request served", fields...)
		}
	}
}
