package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boskovicgroup/bottchercomplexity/internal/infrastructure/monitoring/prometheus"
)

// Metrics returns middleware that records request counts, durations, and
// in-flight gauges.  The path label is the chi route pattern resolved after
// the handler ran, never the raw URL path, so label cardinality stays
// bounded under scanner traffic.  The in-flight gauge is labeled by method
// only because the pattern is unknown before routing.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			active := m.HTTPActiveRequests.WithLabelValues(r.Method)
			active.Inc()
			defer active.Dec()

			start := time.Now()
			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			prometheus.RecordHTTPRequest(m, r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}

// routePattern resolves the matched chi route pattern for a completed
// request.  Unrouted requests (404s, handlers mounted outside chi) collapse
// into a single label value.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
