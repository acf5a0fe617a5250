package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zainjo/insight-dashboard/backend/internal/metrics"
)

// Metrics records request counters and latencies per route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		metrics.RequestsTotal.
			WithLabelValues(r.Method, endpoint, strconv.Itoa(ww.Status())).
			Inc()
		metrics.RequestDuration.
			WithLabelValues(r.Method, endpoint).
			Observe(time.Since(start).Seconds())
	})
}
