package handler

import (
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/service"
)

// LocationHandler serves the IP based location endpoints.
// It deals with HTTP concerns only; the service decides what a lookup means.
type LocationHandler struct {
	service *service.LocationService
	logger  *logger.Logger
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc *service.LocationService, log *logger.Logger) *LocationHandler {
	if log == nil {
		log = logger.NewDefault()
	}
	return &LocationHandler{
		service: svc,
		logger:  log.WithComponent("LocationHandler"),
	}
}

// GetLocation handles GET /api/location
// @Summary      Coordinates of the relay's public address
// @Description  Returns "lat,long" from the IP metadata provider, or null when the provider is unavailable
// @Tags         Location
// @Produce      json
// @Success      200  {object}   models.LocationResponse
// @Failure      500  {object}   models.ErrorResponse  "Unexpected lookup failure"
// @Router       /api/location [get]
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	lookup := h.service.Lookup(r.Context())

	// An unavailable provider degrades to null; anything else is a real failure
	if err := lookup.Err(); err != nil && !lookup.Degraded() {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := models.LocationResponse{}
	if loc, ok := lookup.Coordinates(); ok {
		resp.Loc = &loc
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetMetadata handles GET /api/metadata
// @Summary      Full IP metadata of the relay's public address
// @Description  Keys the provider did not return are omitted
// @Tags         Location
// @Produce      json
// @Success      200  {object}   models.IPMetadata
// @Failure      502  {object}   models.ErrorResponse  "Provider answered with an error"
// @Failure      504  {object}   models.ErrorResponse  "Provider unreachable"
// @Failure      500  {object}   models.ErrorResponse  "Unexpected lookup failure"
// @Router       /api/metadata [get]
func (h *LocationHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	lookup := h.service.Lookup(r.Context())

	metadata, ok := lookup.Metadata()
	if !ok {
		h.respondLookupError(w, lookup.Err())
		return
	}

	respondJSON(w, http.StatusOK, metadata)
}

// GetSelfIP handles GET /api/ip
// @Summary      Public IPv4 address of the relay
// @Tags         Location
// @Produce      json
// @Success      200  {object}   models.SelfIPResponse
// @Failure      502  {object}   models.ErrorResponse  "Provider answered with an error"
// @Failure      504  {object}   models.ErrorResponse  "Provider unreachable"
// @Router       /api/ip [get]
func (h *LocationHandler) GetSelfIP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.SelfIP(r.Context())
	if err != nil {
		h.respondLookupError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *LocationHandler) respondLookupError(w http.ResponseWriter, err error) {
	status := statusForError(err)

	switch status {
	case http.StatusBadGateway:
		respondError(w, status, "Location provider returned an error")
	case http.StatusGatewayTimeout:
		respondError(w, status, "Location provider is unreachable")
	default:
		h.logger.Error().Err(err).Msg("Unexpected lookup failure")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
