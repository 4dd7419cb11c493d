package upstream

import "errors"

var (
	// ErrTransport is returned when the request never produced a response:
	// DNS failures, refused connections, timeouts, truncated bodies.
	ErrTransport = errors.New("upstream transport error")

	// ErrHTTPStatus is returned when the provider answered with something other
	// than 200, or with a provider-level status that is not "OK".
	ErrHTTPStatus = errors.New("upstream returned unexpected status")

	// ErrParse is returned when the body is not the JSON shape we expect.
	ErrParse = errors.New("cannot parse upstream response")

	// ErrEmptyResult is returned when a provider found nothing where exactly
	// one result was expected (for example a reverse geocode with no matches).
	ErrEmptyResult = errors.New("upstream returned no results")

	// ErrMissingAPIKey is returned before any request is made when a provider
	// requires a credential and none was configured.
	ErrMissingAPIKey = errors.New("api key is required")
)

// IsUnavailable reports whether err means the provider could not be reached or
// refused to answer, as opposed to answering with something we cannot use.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrHTTPStatus)
}
