package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dd0wney/glsgraph/pkg/logging"
	"github.com/dd0wney/glsgraph/pkg/metrics"
	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(router *gin.Engine, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(PanicRecovery(logging.NewJSONLogger(&buf, logging.DebugLevel)))
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := perform(router, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "kaboom", "panic value must not reach the client")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := perform(router, "/id")
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("client supplied", func(t *testing.T) {
		w := perform(router, "/id", RequestIDHeader, "trace-42")
		assert.Equal(t, "trace-42", w.Header().Get(RequestIDHeader))
	})

	t.Run("sanitized", func(t *testing.T) {
		w := perform(router, "/id", RequestIDHeader, "abc<script>")
		assert.Equal(t, "abcscript", w.Body.String())
	})

	t.Run("only junk replaced", func(t *testing.T) {
		w := perform(router, "/id", RequestIDHeader, "<>!")
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestSanitizeRequestIDTruncates(t *testing.T) {
	assert.Len(t, sanitizeRequestID(strings.Repeat("a", 200)), maxRequestIDLength)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	router := gin.New()
	router.Use(RequestID(), Logging(logging.NewJSONLogger(&buf, logging.DebugLevel)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	perform(router, "/ok")
	perform(router, "/bad")
	perform(router, "/fail", RequestIDHeader, "req-7")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	levels := make([]string, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		levels = append(levels, entry["level"].(string))
	}
	assert.Equal(t, []string{"DEBUG", "WARN", "ERROR"}, levels)
	assert.Contains(t, lines[2], `"request_id":"req-7"`)
	assert.Contains(t, lines[2], `"status":503`)
}

func TestMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	router := gin.New()
	router.Use(Metrics(reg))
	router.GET("/api/v1/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(router, "/api/v1/items/1")
	perform(router, "/api/v1/items/2")
	perform(router, "/nowhere")

	var m dto.Metric
	require.NoError(t, reg.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/items/:id", "200").Write(&m))
	assert.Equal(t, 2.0, m.GetCounter().GetValue(), "routes are labelled by pattern")

	m.Reset()
	require.NoError(t, reg.HTTPRequestsTotal.WithLabelValues("GET", unmatchedRoute, "404").Write(&m))
	assert.Equal(t, 1.0, m.GetCounter().GetValue())

	m.Reset()
	require.NoError(t, reg.HTTPRequestsInFlight.Write(&m))
	assert.Equal(t, 0.0, m.GetGauge().GetValue())
}

func TestMetricsNilRegistry(t *testing.T) {
	router := gin.New()
	router.Use(Metrics(nil))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(router, "/ok").Code)
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, "/ok")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
}
