package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/tidwall/gjson"
)

const (
	ProviderGoogleMaps = "googlemaps"

	// DefaultMapsBaseURL is the root of the Google Maps web service APIs
	DefaultMapsBaseURL = "https://maps.googleapis.com/maps/api"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusNotFound    = "NOT_FOUND"
)

// MapsClient talks to the geocoding, place details and time zone endpoints.
// The API key travels as the "key" query parameter.
type MapsClient struct {
	client  HTTPClient
	baseURL string
	apiKey  string
}

// NewMapsClient creates a Google Maps client. An empty baseURL falls back to DefaultMapsBaseURL.
func NewMapsClient(client HTTPClient, baseURL, apiKey string) *MapsClient {
	if baseURL == "" {
		baseURL = DefaultMapsBaseURL
	}

	return &MapsClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// HasAPIKey reports whether requests can be authenticated at all
func (m *MapsClient) HasAPIKey() bool {
	return m.apiKey != ""
}

// ReverseGeocode returns the place_id of the first result for a coordinate pair.
// A search with no matches yields ErrEmptyResult.
func (m *MapsClient) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", formatCoordinates(lat, lng))

	body, err := m.get(ctx, "/geocode/json", params)
	if err != nil {
		return "", err
	}

	if err := checkStatus(body); err != nil {
		return "", err
	}

	if gjson.GetBytes(body, "results.#").Int() == 0 {
		return "", fmt.Errorf("%s: reverse geocode %s: %w", ProviderGoogleMaps, params.Get("latlng"), ErrEmptyResult)
	}

	placeID := gjson.GetBytes(body, "results.0.place_id")
	if placeID.Type != gjson.String || placeID.Str == "" {
		return "", fmt.Errorf("%s: %w: first result has no place_id", ProviderGoogleMaps, ErrParse)
	}

	return placeID.Str, nil
}

// PlaceDetails returns the provider's details document verbatim
func (m *MapsClient) PlaceDetails(ctx context.Context, placeID string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("place_id", placeID)

	body, err := m.get(ctx, "/place/details/json", params)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(body); err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

// TimeZone looks up the zone and its offsets for a coordinate pair at the given instant
func (m *MapsClient) TimeZone(ctx context.Context, lat, lng float64, at time.Time) (*models.TimeZone, error) {
	params := url.Values{}
	params.Set("location", formatCoordinates(lat, lng))
	params.Set("timestamp", strconv.FormatInt(at.Unix(), 10))

	body, err := m.get(ctx, "/timezone/json", params)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(body); err != nil {
		return nil, err
	}

	tz := &models.TimeZone{}
	if err := json.Unmarshal(body, tz); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ProviderGoogleMaps, ErrParse, err)
	}

	if tz.TimeZoneID == "" {
		return nil, fmt.Errorf("%s: %w: missing timeZoneId", ProviderGoogleMaps, ErrParse)
	}

	return tz, nil
}

func (m *MapsClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("%s: %w", ProviderGoogleMaps, ErrMissingAPIKey)
	}

	params.Set("key", m.apiKey)

	body, err := getJSON(ctx, m.client, ProviderGoogleMaps, m.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: %w: invalid JSON from %s", ProviderGoogleMaps, ErrParse, path)
	}

	return body, nil
}

// checkStatus maps the "status" field Google puts in every answer to our error kinds
func checkStatus(body []byte) error {
	status := gjson.GetBytes(body, "status")
	if !status.Exists() {
		return nil
	}

	switch status.String() {
	case statusOK:
		return nil
	case statusZeroResults, statusNotFound:
		return fmt.Errorf("%s: %w: %s", ProviderGoogleMaps, ErrEmptyResult, status.String())
	default:
		message := gjson.GetBytes(body, "error_message").String()
		if message == "" {
			message = status.String()
		}
		return fmt.Errorf("%s: %w: %s", ProviderGoogleMaps, ErrHTTPStatus, message)
	}
}

func formatCoordinates(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
