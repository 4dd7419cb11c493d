package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/limiter"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
)

const rateLimitMessage = "Rate limit exceeded. Please try again later."

// RateLimitMiddleware enforces a per-client budget and answers 429 when it is spent.
// It expects chi's RealIP middleware to have run so RemoteAddr is the client address.
// m may be nil.
func RateLimitMiddleware(lim limiter.Limiter, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow(clientKey(r)) {
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{Error: rateLimitMessage})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey strips the port so every connection from one host shares a budget
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
