package middleware

import (
	"strconv"
	"time"

	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no registered route, keeping
// arbitrary paths out of the label set.
const unmatchedRoute = "unmatched"

// Metrics tracks request counts, durations and in-flight requests
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if reg == nil {
			c.Next()
			return
		}

		start := time.Now()
		reg.HTTPRequestsInFlight.Inc()
		defer reg.HTTPRequestsInFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		reg.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
