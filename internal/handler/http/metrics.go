package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/handler/http/pathutil"
	"github.com/Aywac/tawzifak1122/internal/handler/http/responsewriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// Business gauges mirroring the global stats counters. Refreshed
	// whenever the stats document is read.
	adsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ads_total",
			Help: "Live classified ads by post type",
		},
		[]string{"post_type"},
	)

	competitionsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "competitions_total",
			Help: "Live competition announcements",
		},
	)

	immigrationTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "immigration_posts_total",
			Help: "Live immigration posts",
		},
	)

	usersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "users_total",
			Help: "Registered user profiles",
		},
	)

	searchScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_scans_total",
			Help: "Full-collection fallback search scans",
		},
		[]string{"collection"},
	)
)

// MetricsMiddleware records request counts, latencies and response sizes,
// labeled by the normalized route template so free-form IDs and slugs do
// not explode metric cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		path := pathutil.NormalizePath(r.URL.Path)
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(wrapped.StatusCode())
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
		httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(wrapped.BytesWritten()))
	})
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// UpdateGlobalStats pushes the stats counters into the business gauges.
func UpdateGlobalStats(s *entity.GlobalStats) {
	if s == nil {
		return
	}
	adsTotal.WithLabelValues(string(entity.PostTypeSeekingWorker)).Set(float64(s.Jobs))
	adsTotal.WithLabelValues(string(entity.PostTypeSeekingJob)).Set(float64(s.Seekers))
	competitionsTotal.Set(float64(s.Competitions))
	immigrationTotal.Set(float64(s.Immigration))
	usersTotal.Set(float64(s.Users))
}

// RecordSearchScan counts one fallback full-collection scan.
func RecordSearchScan(collection string) {
	searchScansTotal.WithLabelValues(collection).Inc()
}
