package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/evyataryagoni/geolocate/internal/metrics"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/upstream"
)

// MetadataFetcher returns metadata about the caller's public address.
// Implemented by upstream.MetadataClient.
type MetadataFetcher interface {
	Fetch(ctx context.Context) (*models.IPMetadata, error)
}

// SelfIPResolver returns the caller's public address.
// Implemented by upstream.IPResolver.
type SelfIPResolver interface {
	ResolveSelfIP(ctx context.Context) (string, error)
}

// Geocoder covers the mapping provider calls. Implemented by upstream.MapsClient.
type Geocoder interface {
	HasAPIKey() bool
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
	PlaceDetails(ctx context.Context, placeID string) (json.RawMessage, error)
	TimeZone(ctx context.Context, lat, lng float64, at time.Time) (*models.TimeZone, error)
}

// resultLabel turns an upstream error into a low-cardinality metric label
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, upstream.ErrTransport):
		return "transport_error"
	case errors.Is(err, upstream.ErrHTTPStatus):
		return "http_error"
	case errors.Is(err, upstream.ErrParse):
		return "parse_error"
	case errors.Is(err, upstream.ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, upstream.ErrMissingAPIKey):
		return "missing_api_key"
	default:
		return "error"
	}
}

func observeUpstream(m *metrics.Metrics, provider string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.UpstreamRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	m.UpstreamRequestsTotal.WithLabelValues(provider, resultLabel(err)).Inc()
}
