// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "HTTP requests by method, route template and status code",
	}, []string{"method", "route", "status"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	loginFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_login_failures_total",
		Help: "Failed credential checks",
	})
	loginLockoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_login_lockouts_total",
		Help: "Login attempts rejected by the lockout window",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, loginFailuresTotal, loginLockoutsTotal)
}

// ObserveRequest records one served request. route is the router template
// (e.g. /api/products/:id) so ids do not explode label cardinality.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func LoginFailed() { loginFailuresTotal.Inc() }

func LoginLocked() { loginLockoutsTotal.Inc() }

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
