package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/geolocate/internal/config"
	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/evyataryagoni/geolocate/internal/limiter"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/router"
	"github.com/evyataryagoni/geolocate/internal/service"
	"github.com/evyataryagoni/geolocate/internal/upstream"
	"github.com/prometheus/client_golang/prometheus"
)

const userAgent = "geolocate-relay/1.0"

func main() {
	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Configuration rejected")
	}

	rateLimiter := setupRateLimiter(appConfig, appLogger)
	defer rateLimiter.Close()

	metricsCollector := setupMetrics(appLogger)

	// Build application layers
	httpClient := upstream.NewHTTPClient(appConfig.UpstreamTimeout, userAgent)

	locationService := service.NewLocationService(
		upstream.NewMetadataClient(httpClient, appConfig.IPInfoURL, appConfig.IPInfoToken),
		upstream.NewIPResolver(httpClient, appConfig.IPifyURL),
		metricsCollector,
		appLogger,
	)
	geocodeService := service.NewGeocodeService(
		upstream.NewMapsClient(httpClient, appConfig.GoogleMapsBaseURL, appConfig.GoogleMapsAPIKey),
		metricsCollector,
		appLogger,
	)
	if !geocodeService.Enabled() {
		appLogger.Warn().Msg("GOOGLE_MAPS_API_KEY is not set, /api/timezone will answer 503")
	}

	appRouter := router.SetupRouter(router.Options{
		LocationHandler:    handler.NewLocationHandler(locationService, appLogger),
		TimeZoneHandler:    handler.NewTimeZoneHandler(geocodeService, appLogger),
		RateLimiter:        rateLimiter,
		Metrics:            metricsCollector,
		Logger:             appLogger,
		CORSAllowedOrigins: appConfig.CORSAllowedOrigins,
	})

	// Start server
	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
	})

	appLogger.Info().Msg("Starting geolocate relay...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("ipinfo_url", appConfig.IPInfoURL).
		Bool("ipinfo_token", appConfig.IPInfoToken != "").
		Bool("maps_api_key", appConfig.GoogleMapsAPIKey != "").
		Dur("upstream_timeout", appConfig.UpstreamTimeout).
		Str("rate_limiter_type", appConfig.RateLimitType).
		Int("rate_limit", appConfig.RateLimit).
		Int("rate_limit_window", appConfig.RateLimitWindow).
		Strs("cors_allowed_origins", appConfig.CORSAllowedOrigins).
		Msg("Configuration loaded")

	return appLogger
}

// setupRateLimiter initializes the inbound rate limiter.
// Supports in-memory and Redis-based limiting.
func setupRateLimiter(appConfig *config.Config, log *logger.Logger) limiter.Limiter {
	rateLimiter, err := limiter.New(limiter.Config{
		Type:              appConfig.RateLimitType,
		RequestsPerSecond: appConfig.RequestsPerSecond(),
		RedisAddr:         appConfig.RedisAddr,
		RedisPassword:     appConfig.RedisPassword,
		RedisDB:           appConfig.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize rate limiter")
	}

	log.Info().
		Str("type", appConfig.RateLimitType).
		Float64("requests_per_second", appConfig.RequestsPerSecond()).
		Msg("Rate limiter initialized")

	return rateLimiter
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New(prometheus.DefaultRegisterer)
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight requests
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      appConfig.UpstreamTimeout*2 + 5*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().
			Str("port", appConfig.Port).
			Str("api_endpoint", "http://localhost:"+appConfig.Port+"/api/location").
			Str("health_check", "http://localhost:"+appConfig.Port+"/health").
			Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
			Msg("Server is running")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
