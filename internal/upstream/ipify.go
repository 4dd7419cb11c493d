package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	ProviderIPify = "ipify"

	// DefaultIPifyURL echoes the caller's public address as {"ip": "..."}
	DefaultIPifyURL = "https://api64.ipify.org?format=json"
)

type ipifyResponse struct {
	IP *string `json:"ip"`
}

// IPResolver finds the public address of the machine it runs on
type IPResolver struct {
	client HTTPClient
	url    string
}

// NewIPResolver creates a resolver. An empty url falls back to DefaultIPifyURL.
func NewIPResolver(client HTTPClient, url string) *IPResolver {
	if url == "" {
		url = DefaultIPifyURL
	}

	return &IPResolver{
		client: client,
		url:    url,
	}
}

// ResolveSelfIP asks the echo service for our address and returns it sanitized.
// The result only contains digits and dots; octet ranges are not checked.
func (r *IPResolver) ResolveSelfIP(ctx context.Context) (string, error) {
	body, err := getJSON(ctx, r.client, ProviderIPify, r.url, nil)
	if err != nil {
		return "", err
	}

	var resp ipifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%s: %w: %w", ProviderIPify, ErrParse, err)
	}

	if resp.IP == nil {
		return "", fmt.Errorf("%s: %w: missing 'ip' field", ProviderIPify, ErrParse)
	}

	return SanitizeIP(*resp.IP), nil
}

// SanitizeIP keeps only decimal digits and periods, preserving their order
func SanitizeIP(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
}
