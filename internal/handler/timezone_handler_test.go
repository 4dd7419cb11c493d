package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evyataryagoni/geolocate/internal/logger"
	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/evyataryagoni/geolocate/internal/service"
	"github.com/evyataryagoni/geolocate/internal/upstream"
)

func newTestTimeZoneHandler(geocoder *service.MockGeocoder) *TimeZoneHandler {
	return NewTimeZoneHandler(service.NewGeocodeService(geocoder, nil, logger.Nop()), logger.Nop())
}

// TestTimeZoneHandler_Success tests a normal lookup
func TestTimeZoneHandler_Success(t *testing.T) {
	geocoder := &service.MockGeocoder{APIKey: true, Zone: &models.TimeZone{
		TimeZoneID:   "America/New_York",
		TimeZoneName: "Eastern Standard Time",
		RawOffset:    -18000,
	}}
	handler := newTestTimeZoneHandler(geocoder)

	rec := httptest.NewRecorder()
	handler.GetTimeZone(rec, httptest.NewRequest(http.MethodGet, "/api/timezone?lat=40.7128&lng=-74.0060", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.TimeZoneResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TimeZoneID != "America/New_York" || resp.RawOffset != -18000 {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.LocalTime == "" {
		t.Error("expected a local time")
	}
}

// TestTimeZoneHandler_BadRequests tests parameter validation
func TestTimeZoneHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"missing both", "", "Missing 'lat' or 'lng' query parameter"},
		{"missing lng", "?lat=1", "Missing 'lat' or 'lng' query parameter"},
		{"not a number", "?lat=north&lng=1", "Invalid coordinates"},
		{"latitude out of range", "?lat=91&lng=0", "Invalid coordinates"},
		{"longitude out of range", "?lat=0&lng=181", "Invalid coordinates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := &service.MockGeocoder{APIKey: true}
			handler := newTestTimeZoneHandler(geocoder)

			rec := httptest.NewRecorder()
			handler.GetTimeZone(rec, httptest.NewRequest(http.MethodGet, "/api/timezone"+tt.query, nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}

			var errResp models.ErrorResponse
			json.NewDecoder(rec.Body).Decode(&errResp)
			if errResp.Error != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, errResp.Error)
			}
			if geocoder.ZoneCalls != 0 {
				t.Error("expected no upstream call")
			}
		})
	}
}

// TestTimeZoneHandler_NotConfigured tests the missing API key
func TestTimeZoneHandler_NotConfigured(t *testing.T) {
	handler := newTestTimeZoneHandler(&service.MockGeocoder{})

	rec := httptest.NewRecorder()
	handler.GetTimeZone(rec, httptest.NewRequest(http.MethodGet, "/api/timezone?lat=1&lng=2", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}

// TestTimeZoneHandler_UpstreamErrors tests the status mapping
func TestTimeZoneHandler_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"denied", upstream.ErrHTTPStatus, http.StatusBadGateway},
		{"unreachable", upstream.ErrTransport, http.StatusGatewayTimeout},
		{"zero results", upstream.ErrEmptyResult, http.StatusNotFound},
		{"garbage", upstream.ErrParse, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTimeZoneHandler(&service.MockGeocoder{APIKey: true, ZoneErr: tt.err})

			rec := httptest.NewRecorder()
			handler.GetTimeZone(rec, httptest.NewRequest(http.MethodGet, "/api/timezone?lat=1&lng=2", nil))

			if rec.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}
