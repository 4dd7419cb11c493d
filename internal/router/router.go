package router

import (
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/evyataryagoni/geolocate/internal/limiter"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	custommiddleware "github.com/evyataryagoni/geolocate/internal/middleware"
	"github.com/evyataryagoni/geolocate/internal/router/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries everything SetupRouter wires together
type Options struct {
	LocationHandler *handler.LocationHandler
	TimeZoneHandler *handler.TimeZoneHandler

	RateLimiter limiter.Limiter
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // defaults to prometheus.DefaultGatherer
	Logger      *logger.Logger

	CORSAllowedOrigins []string
}

// SetupRouter creates the chi router with all middleware and routes.
//
// Order matters: RequestID first so every log line carries it, then the
// recoverer inside logging so a panic is still logged as a 500.
// Only /api is rate limited; health checks and scrapes never are.
func SetupRouter(opts Options) chi.Router {
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.LoggingMiddleware(opts.Logger))
	r.Use(custommiddleware.RecovererMiddleware(opts.Logger))
	r.Use(custommiddleware.CORSMiddleware(opts.CORSAllowedOrigins))
	r.Use(custommiddleware.MetricsMiddleware(opts.Metrics))

	r.Group(func(r chi.Router) {
		r.Use(custommiddleware.RateLimitMiddleware(opts.RateLimiter, opts.Metrics))
		r.Mount("/api", api.SetupRoutes(opts.LocationHandler, opts.TimeZoneHandler))
	})

	r.Get("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}

// healthCheckHandler reports liveness only; upstream providers are not probed
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
