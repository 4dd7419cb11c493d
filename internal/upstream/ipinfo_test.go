package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jarcoal/httpmock"
)

const fullIPInfoBody = `{
  "ip": "23.22.13.113",
  "hostname": "ec2-23-22-13-113.compute-1.amazonaws.com",
  "city": "Virginia Beach",
  "region": "Virginia",
  "country": "US",
  "loc": "36.7957,-76.0126",
  "org": "AS14618 Amazon.com, Inc.",
  "postal": "23479",
  "timezone": "America/New_York",
  "readme": "https://ipinfo.io/missingauth"
}`

// TestMetadataClient_Fetch tests a complete response
func TestMetadataClient_Fetch(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultIPInfoURL,
		httpmock.NewStringResponder(http.StatusOK, fullIPInfoBody))

	metadata, err := NewMetadataClient(newTestClient(), "", "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]*string{
		"Virginia Beach":           metadata.City,
		"Virginia":                 metadata.Region,
		"US":                       metadata.Country,
		"36.7957,-76.0126":         metadata.Loc,
		"AS14618 Amazon.com, Inc.": metadata.Org,
		"23479":                    metadata.Postal,
		"America/New_York":         metadata.Timezone,
	}
	for expected, got := range checks {
		if got == nil || *got != expected {
			t.Errorf("expected %q, got %v", expected, got)
		}
	}
}

// TestMetadataClient_Fetch_MissingKeys tests that absent keys stay nil
func TestMetadataClient_Fetch_MissingKeys(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultIPInfoURL,
		httpmock.NewStringResponder(http.StatusOK, `{"city":"New York","loc":"40.7128,-74.0060"}`))

	metadata, err := NewMetadataClient(newTestClient(), "", "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metadata.City == nil || *metadata.City != "New York" {
		t.Errorf("expected city New York, got %v", metadata.City)
	}
	if metadata.Postal != nil {
		t.Errorf("expected postal to be absent, got %q", *metadata.Postal)
	}
	if metadata.Org != nil {
		t.Errorf("expected org to be absent, got %q", *metadata.Org)
	}
}

// TestMetadataClient_Fetch_AuthToken tests the bearer header
func TestMetadataClient_Fetch_AuthToken(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var gotAuth string
	httpmock.RegisterResponder("GET", DefaultIPInfoURL,
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			return httpmock.NewStringResponse(http.StatusOK, `{}`), nil
		})

	if _, err := NewMetadataClient(newTestClient(), "", "secret").Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

// TestMetadataClient_Fetch_Errors tests the error classification
func TestMetadataClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		expected  error
	}{
		{"transport", httpmock.NewErrorResponder(errors.New("no such host")), ErrTransport},
		{"internal server error", httpmock.NewStringResponder(http.StatusInternalServerError, ""), ErrHTTPStatus},
		{"rate limited", httpmock.NewStringResponder(http.StatusTooManyRequests, "{}"), ErrHTTPStatus},
		{"bad json", httpmock.NewStringResponder(http.StatusOK, `{[`), ErrParse},
		{"not an object", httpmock.NewStringResponder(http.StatusOK, `["city"]`), ErrParse},
		{"wrong field type", httpmock.NewStringResponder(http.StatusOK, `{"city": 42}`), ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder("GET", DefaultIPInfoURL, tt.responder)

			metadata, err := NewMetadataClient(newTestClient(), "", "").Fetch(context.Background())
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
			if metadata != nil {
				t.Errorf("expected nil metadata on error, got %+v", metadata)
			}
		})
	}
}

// TestMetadataClient_Fetch_Cancelled tests that cancellation is not reported as a transport fault
func TestMetadataClient_Fetch_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMetadataClient(newTestClient(), server.URL, "").Fetch(ctx)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if IsUnavailable(err) {
		t.Errorf("cancellation must not be classified as unavailable: %v", err)
	}
}
