package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/evyataryagoni/geolocate/internal/models"
	"github.com/tidwall/gjson"
)

const (
	ProviderIPInfo = "ipinfo"

	// DefaultIPInfoURL describes the address the request comes from
	DefaultIPInfoURL = "https://ipinfo.io/json"
)

// MetadataClient fetches metadata about the caller's own public address
type MetadataClient struct {
	client    HTTPClient
	url       string
	authToken string
}

// NewMetadataClient creates an ipinfo client. The token is optional;
// without it ipinfo serves a rate limited anonymous tier.
func NewMetadataClient(client HTTPClient, url, authToken string) *MetadataClient {
	if url == "" {
		url = DefaultIPInfoURL
	}

	return &MetadataClient{
		client:    client,
		url:       url,
		authToken: authToken,
	}
}

// Fetch performs one lookup. Keys missing from the response stay nil.
func (m *MetadataClient) Fetch(ctx context.Context) (*models.IPMetadata, error) {
	header := http.Header{}
	if m.authToken != "" {
		header.Set("Authorization", "Bearer "+m.authToken)
	}

	body, err := getJSON(ctx, m.client, ProviderIPInfo, m.url, header)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, fmt.Errorf("%s: %w: body is not a JSON object", ProviderIPInfo, ErrParse)
	}

	metadata := &models.IPMetadata{}
	if err := json.Unmarshal(body, metadata); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ProviderIPInfo, ErrParse, err)
	}

	return metadata, nil
}
