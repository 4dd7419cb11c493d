package main

import (
	"context"
	"fmt"
	"os"

	"github.com/evyataryagoni/geolocate/internal/config"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/service"
	"github.com/evyataryagoni/geolocate/internal/snapshot"
	"github.com/evyataryagoni/geolocate/internal/upstream"
)

// This tool saves the place details of one coordinate pair as indented JSON.
// Usage: GOOGLE_MAPS_API_KEY=... go run ./cmd/place-details
func main() {
	appConfig := config.Load()

	appLogger := logger.New(logger.Config{
		Level:      appConfig.LogLevel,
		Pretty:     appConfig.LogPretty,
		OutputFile: appConfig.LogFile,
		Output:     os.Stderr,
	})

	if err := appConfig.Validate(); err != nil {
		appLogger.Fatal().Err(err).Msg("Configuration rejected")
	}

	maps := upstream.NewMapsClient(
		upstream.NewHTTPClient(appConfig.UpstreamTimeout, "geolocate-place-details/1.0"),
		appConfig.GoogleMapsBaseURL,
		appConfig.GoogleMapsAPIKey,
	)
	geocodeService := service.NewGeocodeService(maps, nil, appLogger)

	if !geocodeService.Enabled() {
		appLogger.Fatal().Msg("GOOGLE_MAPS_API_KEY is not set")
	}

	appLogger.Info().
		Float64("lat", appConfig.SnapshotLat).
		Float64("lng", appConfig.SnapshotLng).
		Msg("Looking up place details")

	doc, err := geocodeService.PlaceSnapshot(context.Background(), appConfig.SnapshotLat, appConfig.SnapshotLng)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to fetch place details")
	}

	if err := snapshot.WriteJSON(appConfig.SnapshotPath, doc); err != nil {
		appLogger.Fatal().Err(err).Str("path", appConfig.SnapshotPath).Msg("Failed to save place details")
	}

	fmt.Printf("Place details have been saved to '%s'\n", appConfig.SnapshotPath)
}
