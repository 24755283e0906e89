package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/gin-gonic/gin"
)

// PanicRecovery recovers from panics in handlers. Internal details are
// logged but not exposed to clients.
func PanicRecovery(logger logging.Logger) gin.HandlerFunc {
	logger = logging.OrNop(logger)
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in HTTP handler",
					logging.String("method", c.Request.Method),
					logging.String("path", c.Request.URL.Path),
					logging.String("panic", fmt.Sprint(err)),
					logging.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"ok":    false,
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
