// Package api exposes analyses over HTTP with gin.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/semantic/analyzer"
	"github.com/seo-optimizer/semantic/logging"
	"github.com/seo-optimizer/semantic/middleware"
	"github.com/seo-optimizer/semantic/models"
	"github.com/seo-optimizer/semantic/store"
)

// Analyzer runs analyses. *analyzer.Analyzer satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, input string, mode models.Mode) (models.Analysis, error)
	GetCacheStats() analyzer.CacheStats
}

// Deps are the collaborators of the HTTP layer
type Deps struct {
	Analyzer    Analyzer
	Store       store.AnalysisStore
	Statistics  *logging.Statistics
	RateLimiter *middleware.RateLimiter
	Metrics     http.Handler
	Logger      logging.Logger
}

// NewRouter wires middleware and routes onto a new gin engine
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = logging.NewNop()
	}
	if d.Statistics == nil {
		d.Statistics = logging.NewStatistics("")
	}
	h := &handlers{
		analyzer: d.Analyzer,
		store:    d.Store,
		stats:    d.Statistics,
		logger:   d.Logger,
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler(d.Logger))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}
	r.Use(cors())
	r.Use(middleware.StatsMiddleware(d.Statistics, d.Logger))

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/analyze", h.analyze)
		api.GET("/analyses", h.list)
		api.GET("/analyses/:id", h.get)
		api.DELETE("/analyses/:id", h.delete)
		api.GET("/analyses/:id/export", h.export)
		api.GET("/statistics", h.statistics)
	}
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}
	return r
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
