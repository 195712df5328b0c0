package mockapi

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the demo backend's routes.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	total    atomic.Int64
	errors   atomic.Int64
	latSum   atomic.Int64
}

// NewMetrics registers the request collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heimdall_demo",
			Name:      "requests_total",
			Help:      "Requests served by the demo backend.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "heimdall_demo",
			Name:      "request_duration_seconds",
			Help:      "Demo backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

// Middleware records every request after its handler runs.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()

		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
		m.total.Add(1)
		m.latSum.Add(elapsed.Microseconds())
		if status >= 500 {
			m.errors.Add(1)
		}
	}
}

// Totals returns request count, error percentage and mean latency in ms.
func (m *Metrics) Totals() (total int64, errorRate, avgMillis float64) {
	total = m.total.Load()
	if total == 0 {
		return 0, 0, 0
	}
	errorRate = float64(m.errors.Load()) / float64(total) * 100
	avgMillis = float64(m.latSum.Load()) / float64(total) / 1000
	return total, errorRate, avgMillis
}
