package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "videra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests partitioned by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "videra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests partitioned by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "videra",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Number of HTTP requests rejected by the per-IP rate limiter.",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, rateLimited)
}

// MiddlewareMeasureRequests records the count and latency of every request.
// Requests are labeled with their route pattern instead of the raw path to keep the label cardinality bounded.
func MiddlewareMeasureRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(wrapped, request)

		route := "unmatched"
		if routeCtx := chi.RouteContext(request.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		requestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(request.Method, route).Observe(time.Since(start).Seconds())
	})
}
