// Package metrics holds the Prometheus collectors shared across the service.
// Everything registers on the default registry, served at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Computations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoracle_standings_computations_total",
		Help: "Season standings computations by result",
	}, []string{"result"})

	ComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoracle_standings_compute_duration_seconds",
		Help:    "Time to fetch, build and simulate one season",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoracle_standings_cache_lookups_total",
		Help: "Standings cache lookups by outcome",
	}, []string{"outcome"})

	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoracle_standings_provider_requests_total",
		Help: "Upstream data provider requests by path and status code",
	}, []string{"path", "code"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoracle_standings_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scoracle_standings_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	SnapshotsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoracle_standings_snapshots_saved_total",
		Help: "Season snapshots written to Postgres",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCompute records one computation.
func ObserveCompute(start time.Time, err error) {
	ComputeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		Computations.WithLabelValues("error").Inc()
		return
	}
	Computations.WithLabelValues("success").Inc()
}

// ObserveProvider records one upstream response. code 0 means the request
// never got a response.
func ObserveProvider(path string, code int) {
	ProviderRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ObserveHTTP records one served request.
func ObserveHTTP(route string, code int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
