package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/storage"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": false, "error": message})
}

// respondFailure maps a store or query error to a status code. Internal
// details are logged but not exposed.
func (s *Server) respondFailure(c *gin.Context, operation string, err error) {
	_ = c.Error(err)

	switch {
	case storage.IsClosed(err):
		respondError(c, http.StatusServiceUnavailable, "database unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, operation+" timed out")
	case errors.Is(err, context.Canceled):
		respondError(c, http.StatusServiceUnavailable, operation+" cancelled")
	default:
		s.logger.Error("request failed", logging.Operation(operation), logging.Error(err))
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("%s failed", operation))
	}
}
