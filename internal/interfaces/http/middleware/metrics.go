package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paymentflow/backend/internal/infrastructure/telemetry"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// HTTPMetrics records request count, latency and in-flight requests on the
// Prometheus registry. Routes are labelled by their pattern, not the raw path.
func HTTPMetrics(reg *telemetry.PrometheusRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reg.InFlight.Inc()
		defer reg.InFlight.Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method
		reg.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		reg.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
