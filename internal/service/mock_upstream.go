package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/evyataryagoni/geolocate/internal/models"
)

// MockMetadataFetcher is a test double for MetadataFetcher
type MockMetadataFetcher struct {
	Metadata *models.IPMetadata
	Err      error

	FetchCalls int
}

// Fetch implements MetadataFetcher
func (m *MockMetadataFetcher) Fetch(ctx context.Context) (*models.IPMetadata, error) {
	m.FetchCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Metadata, nil
}

// MockIPResolver is a test double for SelfIPResolver
type MockIPResolver struct {
	IP  string
	Err error

	ResolveCalls int
}

// ResolveSelfIP implements SelfIPResolver
func (m *MockIPResolver) ResolveSelfIP(ctx context.Context) (string, error) {
	m.ResolveCalls++
	return m.IP, m.Err
}

// MockGeocoder is a test double for Geocoder
type MockGeocoder struct {
	APIKey bool

	PlaceID    string
	ReverseErr error
	Details    json.RawMessage
	DetailsErr error
	Zone       *models.TimeZone
	ZoneErr    error

	ReverseCalls []string // "lat,lng" as passed
	DetailsCalls []string // place ids
	ZoneCalls    int
}

// HasAPIKey implements Geocoder
func (m *MockGeocoder) HasAPIKey() bool {
	return m.APIKey
}

// ReverseGeocode implements Geocoder
func (m *MockGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	m.ReverseCalls = append(m.ReverseCalls, formatPair(lat, lng))
	if m.ReverseErr != nil {
		return "", m.ReverseErr
	}
	return m.PlaceID, nil
}

// PlaceDetails implements Geocoder
func (m *MockGeocoder) PlaceDetails(ctx context.Context, placeID string) (json.RawMessage, error) {
	m.DetailsCalls = append(m.DetailsCalls, placeID)
	if m.DetailsErr != nil {
		return nil, m.DetailsErr
	}
	return m.Details, nil
}

// TimeZone implements Geocoder
func (m *MockGeocoder) TimeZone(ctx context.Context, lat, lng float64, at time.Time) (*models.TimeZone, error) {
	m.ZoneCalls++
	if m.ZoneErr != nil {
		return nil, m.ZoneErr
	}
	return m.Zone, nil
}
