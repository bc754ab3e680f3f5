package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/semantic/logging"
)

// Context keys the analyze handler sets for StatsMiddleware
const (
	KeyAnalysisInput = "analysis.input"
	KeyAnalysisMode  = "analysis.mode"
)

// saveEvery persists usage statistics after this many analyses
const saveEvery = 100

// StatsMiddleware records visitors and analyze request timings
func StatsMiddleware(stats *logging.Statistics, logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.Method != http.MethodPost || c.FullPath() != "/api/analyze" {
			return
		}
		input := c.GetString(KeyAnalysisInput)
		mode := c.GetString(KeyAnalysisMode)
		loadTime := float64(time.Since(start).Milliseconds())
		stats.TrackAnalysis(input, mode, loadTime, c.Writer.Status() >= http.StatusBadRequest)

		if stats.TotalRequests()%saveEvery == 0 {
			go func() {
				if err := stats.Save(); err != nil {
					logger.Warn("save usage statistics", logging.Err(err))
				}
			}()
		}
	}
}
