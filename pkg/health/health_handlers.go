package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the full health report. Degraded is still 200.
func (hc *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := hc.Check(c.Request.Context())

		code := http.StatusOK
		if response.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response)
	}
}

// ReadinessHandler serves 200 only when every readiness check is healthy
func (hc *HealthChecker) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := hc.CheckReadiness(c.Request.Context())

		code := http.StatusOK
		if response.Status != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response)
	}
}
