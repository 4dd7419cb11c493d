package handler

import (
	"net/http"
	"strconv"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/service"
)

// TimeZoneHandler serves time zone lookups so browsers never see the maps API key
type TimeZoneHandler struct {
	service *service.GeocodeService
	logger  *logger.Logger
}

// NewTimeZoneHandler creates a new time zone handler
func NewTimeZoneHandler(svc *service.GeocodeService, log *logger.Logger) *TimeZoneHandler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &TimeZoneHandler{
		service: svc,
		logger:  log.WithComponent("TimeZoneHandler"),
	}
}

// GetTimeZone handles GET /api/timezone?lat=<lat>&lng=<lng>
// @Summary      Time zone and local time at a coordinate pair
// @Tags         Geocoding
// @Produce      json
// @Param        lat  query      number  true  "Latitude"   example(40.7128)
// @Param        lng  query      number  true  "Longitude"  example(-74.0060)
// @Success      200  {object}   models.TimeZoneResponse
// @Failure      400  {object}   models.ErrorResponse  "Missing or invalid coordinates"
// @Failure      503  {object}   models.ErrorResponse  "Maps API key not configured"
// @Failure      502  {object}   models.ErrorResponse  "Provider answered with an error"
// @Router       /api/timezone [get]
func (h *TimeZoneHandler) GetTimeZone(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" || lngStr == "" {
		respondError(w, http.StatusBadRequest, "Missing 'lat' or 'lng' query parameter")
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		respondError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	if !h.service.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "Time zone lookups are not configured")
		return
	}

	resp, err := h.service.TimeZone(r.Context(), lat, lng)
	if err != nil {
		status := statusForError(err)
		switch status {
		case http.StatusBadRequest:
			respondError(w, status, "Invalid coordinates")
		case http.StatusNotFound:
			respondError(w, status, "No time zone found for these coordinates")
		case http.StatusBadGateway, http.StatusGatewayTimeout, http.StatusServiceUnavailable:
			respondError(w, status, "Time zone provider is unavailable")
		default:
			h.logger.Error().Err(err).Msg("Unexpected time zone failure")
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
