package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests.",
	}, []string{"method", "route", "code"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmmarket",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	httpRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "farmmarket",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Count of requests rejected by the rate limiter.",
	})
)

// HTTP tracks metrics for the REST API.
type HTTP struct{}

// NewHTTP creates an HTTP metrics collector.
func NewHTTP() *HTTP {
	return &HTTP{}
}

// ObserveRequest records a served request. route is the matched route pattern.
func (m HTTP) ObserveRequest(method, route string, code int, started time.Time) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// ObserveRateLimited counts a rejected request.
func (m HTTP) ObserveRateLimited() {
	httpRateLimitedTotal.Inc()
}
