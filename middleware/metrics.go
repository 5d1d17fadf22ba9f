package middleware

import (
	"time"

	"vcarpool/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
