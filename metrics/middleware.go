package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records request counts, latency and in-flight gauge for every
// routed request. Unmatched paths are labelled "unmatched" to keep the
// cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestInFlight.Inc()
		start := time.Now()

		c.Next()

		HTTPRequestInFlight.Dec()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		HTTPRequestTotals.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
