// Package metrics holds the prometheus collectors for HTTP traffic and
// domain outcomes.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camp",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "camp",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	validationRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camp",
		Name:      "validation_rejections_total",
		Help:      "Writes rejected by field validation or unresolved references.",
	}, []string{"entity", "field"})
	cascadeDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "camp",
		Name:      "cascade_deleted_signups_total",
		Help:      "Signups removed because their owning activity or camper was deleted.",
	}, []string{"owner"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, validationRejections, cascadeDeleted)
}

// Middleware records count and latency per chi route pattern. Requests that
// match no route share the "unmatched" label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func ValidationRejected(entity, field string) {
	validationRejections.WithLabelValues(entity, field).Inc()
}

// CascadeDeleted counts signups removed with their owner ("activity" or
// "camper").
func CascadeDeleted(owner string, n int64) {
	if n <= 0 {
		return
	}
	cascadeDeleted.WithLabelValues(owner).Add(float64(n))
}
