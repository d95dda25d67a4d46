package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Metrics records request counts by method and status, plus latency, into the
// given VictoriaMetrics set. Paths are not used as labels; they carry ids.
func Metrics(set *metrics.Set) Middleware {
	inflight := set.NewCounter("storefront_http_requests_inflight")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			inflight.Inc()
			defer inflight.Dec()

			next.ServeHTTP(sw, r)

			code := strconv.Itoa(sw.status)
			set.GetOrCreateCounter(fmt.Sprintf(
				`storefront_http_requests_total{method=%q,code=%q}`, r.Method, code,
			)).Inc()
			set.GetOrCreateHistogram(fmt.Sprintf(
				`storefront_http_request_duration_seconds{method=%q}`, r.Method,
			)).UpdateDuration(start)
			set.GetOrCreateHistogram(`storefront_http_response_size_bytes`).Update(float64(sw.bytes))
		})
	}
}
