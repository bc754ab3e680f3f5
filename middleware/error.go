package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/semantic/logging"
)

// ErrorHandler recovers from panics in later handlers and answers 500
func ErrorHandler(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					logging.Any("panic", err),
					logging.String("method", c.Request.Method),
					logging.String("path", c.Request.URL.Path),
					logging.String("stack", string(debug.Stack())))

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "An unexpected error occurred",
				})
			}
		}()

		c.Next()
	}
}
