package api

import (
	"context"
	"net/http"

	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/storage"
	"github.com/dd0wney/glsgraph/pkg/validation"
	"github.com/gin-gonic/gin"
)

// StatsResponse is the body of GET /api/v1/stats
type StatsResponse struct {
	OK    bool          `json:"ok"`
	Stats storage.Stats `json:"stats"`
}

// PathResponse is the body of GET /api/v1/path
type PathResponse struct {
	OK         bool         `json:"ok"`
	From       string       `json:"from"`
	To         string       `json:"to,omitempty"`
	MaxDepth   int          `json:"max_depth"`
	Found      bool         `json:"found"`
	Hops       int          `json:"hops"`
	TotalDelay float64      `json:"total_delay"`
	Nodes      []string     `json:"nodes"`
	Edges      []model.Edge `json:"edges"`
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.graph.Stats(c.Request.Context())
	if err != nil {
		s.respondFailure(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, StatsResponse{OK: true, Stats: stats})
}

func (s *Server) handlePath(c *gin.Context) {
	var req validation.PathRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}
	if err := validation.ValidatePathRequest(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	depth := req.MaxDepth
	if depth == 0 {
		depth = s.tracer.MaxDepth()
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.queryTimeout)
	defer cancel()

	path, err := s.tracer.TraceDepth(ctx, req.From, req.To, depth)
	if err != nil {
		s.respondFailure(c, "path query", err)
		return
	}

	nodes, edges := path.Nodes(), path.Edges
	if nodes == nil {
		nodes = []string{}
	}
	if edges == nil {
		edges = []model.Edge{}
	}
	c.JSON(http.StatusOK, PathResponse{
		OK:         true,
		From:       req.From,
		To:         req.To,
		MaxDepth:   depth,
		Found:      !path.Empty(),
		Hops:       len(path.Edges),
		TotalDelay: path.Total,
		Nodes:      nodes,
		Edges:      edges,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	s.metrics.UpdateSystemMetrics()
	s.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
