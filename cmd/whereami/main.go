package main

import (
	"context"
	"fmt"
	"os"

	"github.com/evyataryagoni/geolocate/internal/config"
	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/service"
	"github.com/evyataryagoni/geolocate/internal/upstream"
)

const none = "<none>"

// This tool prints the public address of this machine and where it appears to be.
// Usage: go run ./cmd/whereami
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

	httpClient := upstream.NewHTTPClient(appConfig.UpstreamTimeout, "geolocate-whereami/1.0")
	locationService := service.NewLocationService(
		upstream.NewMetadataClient(httpClient, appConfig.IPInfoURL, appConfig.IPInfoToken),
		upstream.NewIPResolver(httpClient, appConfig.IPifyURL),
		nil,
		appLogger,
	)

	ctx := context.Background()

	self, err := locationService.SelfIP(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to resolve public IP")
	}
	fmt.Println("IP:", self.IP)

	// One fetch for every field below
	lookup := locationService.Lookup(ctx)
	if err := lookup.Err(); err != nil && !lookup.Degraded() {
		appLogger.Fatal().Err(err).Msg("IP metadata lookup failed")
	}

	fmt.Println("Postal:", orNone(lookup.Postal()))
	fmt.Println("City:", orNone(lookup.City()))
	fmt.Println("Location:", orNone(lookup.Coordinates()))
}

func orNone(value string, ok bool) string {
	if !ok {
		return none
	}
	return value
}
