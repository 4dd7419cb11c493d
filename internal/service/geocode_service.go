package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/upstream"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidCoordinates is returned before any upstream call when a
// latitude or longitude is out of range
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates is a validated latitude/longitude pair
type Coordinates struct {
	Lat float64 `validate:"latitude"`
	Lng float64 `validate:"longitude"`
}

const localTimeLayout = "2006-01-02T15:04:05"

// GeocodeService wraps the mapping provider: place snapshots for the
// snapshot tool and time zone lookups for the relay.
type GeocodeService struct {
	geocoder  Geocoder
	validator *validator.Validate
	metrics   *metrics.Metrics
	logger    *logger.Logger
	now       func() time.Time
}

// NewGeocodeService creates the service. m and log may be nil.
func NewGeocodeService(geocoder Geocoder, m *metrics.Metrics, log *logger.Logger) *GeocodeService {
	if log == nil {
		log = logger.NewDefault()
	}
	return &GeocodeService{
		geocoder:  geocoder,
		validator: validator.New(),
		metrics:   m,
		logger:    log.WithComponent("GeocodeService"),
		now:       time.Now,
	}
}

// Enabled reports whether a maps API key is configured
func (s *GeocodeService) Enabled() bool {
	return s.geocoder.HasAPIKey()
}

// PlaceSnapshot reverse geocodes the pair, then fetches the details document
// of the first match. A search without matches fails with upstream.ErrEmptyResult.
func (s *GeocodeService) PlaceSnapshot(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	if err := s.validate(lat, lng); err != nil {
		return nil, err
	}

	start := time.Now()
	placeID, err := s.geocoder.ReverseGeocode(ctx, lat, lng)
	observeUpstream(s.metrics, upstream.ProviderGoogleMaps, start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("latlng", formatPair(lat, lng)).Msg("Reverse geocode failed")
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	s.logger.Info().Str("place_id", placeID).Msg("Reverse geocode resolved a place")

	start = time.Now()
	details, err := s.geocoder.PlaceDetails(ctx, placeID)
	observeUpstream(s.metrics, upstream.ProviderGoogleMaps, start, err)
	if err != nil {
		s.logger.Error().Err(err).Str("place_id", placeID).Msg("Place details failed")
		return nil, fmt.Errorf("place details: %w", err)
	}

	return details, nil
}

// TimeZone returns the zone for the pair and the current local time there
func (s *GeocodeService) TimeZone(ctx context.Context, lat, lng float64) (*models.TimeZoneResponse, error) {
	if err := s.validate(lat, lng); err != nil {
		return nil, err
	}

	now := s.now()

	start := time.Now()
	tz, err := s.geocoder.TimeZone(ctx, lat, lng, now)
	observeUpstream(s.metrics, upstream.ProviderGoogleMaps, start, err)
	if err != nil {
		s.logger.Warn().Err(err).Str("latlng", formatPair(lat, lng)).Msg("Time zone lookup failed")
		return nil, err
	}

	return &models.TimeZoneResponse{
		TimeZoneID:   tz.TimeZoneID,
		TimeZoneName: tz.TimeZoneName,
		RawOffset:    tz.RawOffset,
		DstOffset:    tz.DstOffset,
		LocalTime:    tz.LocalTime(now).Format(localTimeLayout),
	}, nil
}

func (s *GeocodeService) validate(lat, lng float64) error {
	if err := s.validator.Struct(Coordinates{Lat: lat, Lng: lng}); err != nil {
		s.logger.Warn().Str("latlng", formatPair(lat, lng)).Msg("Rejected coordinates")
		return fmt.Errorf("%w: %s", ErrInvalidCoordinates, formatPair(lat, lng))
	}
	return nil
}

func formatPair(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
