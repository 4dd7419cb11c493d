package api

import (
	"github.com/evyataryagoni/geolocate/internal/handler"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures the relay endpoints mounted under /api
func SetupRoutes(locationHandler *handler.LocationHandler, timeZoneHandler *handler.TimeZoneHandler) chi.Router {
	r := chi.NewRouter()

	// GET /api/location
	r.Get("/location", locationHandler.GetLocation)
	r.Get("/metadata", locationHandler.GetMetadata)
	r.Get("/ip", locationHandler.GetSelfIP)

	// GET /api/timezone?lat=<lat>&lng=<lng>
	r.Get("/timezone", timeZoneHandler.GetTimeZone)

	return r
}
