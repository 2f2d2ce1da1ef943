package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/image-thumb/internal/metrics"
)

var metricsSkipPaths = map[string]bool{
	"/metrics": true,
	"/health":  true,
}

// Metrics records Prometheus request metrics labelled by route template.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if metricsSkipPaths[ctx.Request.URL.Path] {
			ctx.Next()
			return
		}

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		ctx.Next()

		// Unmatched routes share one label.
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(ctx.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
