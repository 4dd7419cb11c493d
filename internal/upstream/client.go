package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodySize caps how much of an upstream body we are willing to buffer.
const maxBodySize = 4 << 20

// HTTPClient is the subset of *http.Client the providers need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type httpClient struct {
	userAgent string
	client    *http.Client
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	return h.client.Do(req)
}

// NewHTTPClient wraps an *http.Client with the given timeout and sets
// a user agent on every outgoing request. A zero timeout keeps the
// library default (no timeout).
func NewHTTPClient(timeout time.Duration, userAgent string) HTTPClient {
	return httpClient{
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// getJSON issues a single GET and returns the raw body of a 200 response.
// Errors are classified into ErrTransport and ErrHTTPStatus; a cancelled
// context is returned as is so callers can tell it apart from a network fault.
func getJSON(ctx context.Context, client HTTPClient, provider, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot build a request: %w", provider, err)
	}

	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%s: request cancelled: %w", provider, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", provider, ErrTransport, err)
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", provider, ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: cannot read a response: %w", provider, ErrTransport, err)
	}

	return body, nil
}
