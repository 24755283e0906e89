// Package api serves read-only graph queries over HTTP: graph statistics,
// critical-path traces, health and prometheus metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dd0wney/glsgraph/pkg/api/middleware"
	"github.com/dd0wney/glsgraph/pkg/health"
	"github.com/dd0wney/glsgraph/pkg/importer"
	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/dd0wney/glsgraph/pkg/storage"
	"github.com/gin-gonic/gin"
)

// DefaultQueryTimeout bounds a single path query
const DefaultQueryTimeout = 30 * time.Second

// GraphReader is the store surface the API reads
type GraphReader interface {
	Stats(ctx context.Context) (storage.Stats, error)
	Ping(ctx context.Context) error
}

// PathTracer runs critical-path queries
type PathTracer interface {
	TraceDepth(ctx context.Context, start, end string, maxDepth int) (importer.Path, error)
	MaxDepth() int
}

var (
	_ GraphReader = (*storage.Store)(nil)
	_ PathTracer  = (*importer.Tracer)(nil)
)

// Server holds the handlers' dependencies
type Server struct {
	graph        GraphReader
	tracer       PathTracer
	metrics      *metrics.Registry
	logger       logging.Logger
	health       *health.HealthChecker
	queryTimeout time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request and error logger
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request metrics and the /metrics endpoint
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// WithQueryTimeout bounds each path query
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.queryTimeout = d
		}
	}
}

// NewServer creates the API server
func NewServer(graph GraphReader, tracer PathTracer, opts ...Option) *Server {
	s := &Server{
		graph:        graph,
		tracer:       tracer,
		queryTimeout: DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).With(logging.Component("api"))

	s.health = health.NewHealthChecker()
	s.health.RegisterCheck("database", health.DatabaseCheck(graph.Ping))
	s.health.RegisterCheck("graph", health.GraphCheck(s.graphSize))
	s.health.RegisterCheck("memory", health.MemoryCheck(health.RuntimeMemory))
	s.health.RegisterReadinessCheck("database", health.DatabaseCheck(graph.Ping))
	return s
}

func (s *Server) graphSize(ctx context.Context) (nodes, edges, annotated int64, err error) {
	stats, err := s.graph.Stats(ctx)
	return stats.Nodes, stats.Edges, stats.AnnotatedEdges, err
}

// Router builds the gin engine with all routes and middleware
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.PanicRecovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Metrics(s.metrics),
		middleware.SecurityHeaders(),
	)

	r.GET("/health", s.health.Handler())
	r.GET("/ready", s.health.ReadinessHandler())
	if s.metrics != nil {
		r.GET("/metrics", s.handleMetrics)
	}

	v1 := r.Group("/api/v1")
	v1.GET("/stats", s.handleStats)
	v1.GET("/path", s.handlePath)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})
	return r
}
