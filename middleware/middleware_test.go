package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/semantic/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(logging.NewNop()))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "fine") })

	w := serve(r, http.MethodGet, "/boom", "10.0.0.1")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/ok", "10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", "10.0.0.1").Code)

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "10.0.0.2").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "10.0.0.1").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.limiter("10.0.0.1")
	now = now.Add(visitorIdleTTL + time.Second)
	rl.limiter("10.0.0.2")
	rl.Cleanup()

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestStatsMiddlewareTracksAnalyses(t *testing.T) {
	stats := logging.NewStatistics("")

	r := gin.New()
	r.Use(StatsMiddleware(stats, logging.NewNop()))
	r.POST("/api/analyze", func(c *gin.Context) {
		c.Set(KeyAnalysisInput, "https://www.example.com/page")
		c.Set(KeyAnalysisMode, "url")
		c.Status(http.StatusOK)
	})
	r.POST("/api/other", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodPost, "/api/analyze", "10.0.0.1")
	serve(r, http.MethodPost, "/api/other", "10.0.0.2")

	assert.Equal(t, 1, stats.TotalRequests())
	assert.Equal(t, 2, stats.GetUniqueVisitorsCount())
	assert.Equal(t, []string{"example.com"}, stats.GetPopularDomains(5))
	assert.Zero(t, stats.GetErrorRate())
}

func TestStatsMiddlewareCountsErrors(t *testing.T) {
	stats := logging.NewStatistics("")

	r := gin.New()
	r.Use(StatsMiddleware(stats, nil))
	r.POST("/api/analyze", func(c *gin.Context) {
		c.Set(KeyAnalysisMode, "url")
		c.Status(http.StatusBadRequest)
	})

	serve(r, http.MethodPost, "/api/analyze", "10.0.0.1")
	assert.Equal(t, 100.0, stats.GetErrorRate())
}
