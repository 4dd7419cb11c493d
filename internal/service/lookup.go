package service

import "github.com/evyataryagoni/geolocate/internal/models"

// Lookup is the outcome of one metadata fetch. It is immutable and every
// accessor derives from the same response, so reading several fields costs
// a single upstream call.
//
// A failed fetch still yields a usable Lookup: all accessors report the
// field as absent, Err returns the cause and Degraded tells whether the
// failure was the provider being unavailable (swallowed on purpose) or
// something the caller should treat as a real error.
type Lookup struct {
	metadata *models.IPMetadata
	err      error
	degraded bool
}

// Err returns the fetch error, nil on success
func (l Lookup) Err() error {
	return l.err
}

// Degraded reports whether the provider could not be reached or refused to answer
func (l Lookup) Degraded() bool {
	return l.degraded
}

// OK reports whether metadata is available
func (l Lookup) OK() bool {
	return l.err == nil && l.metadata != nil
}

// Metadata returns a copy of the fetched record
func (l Lookup) Metadata() (models.IPMetadata, bool) {
	if !l.OK() {
		return models.IPMetadata{}, false
	}
	return *l.metadata, true
}

func (l Lookup) City() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.City })
}

func (l Lookup) Region() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.Region })
}

func (l Lookup) Country() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.Country })
}

// Coordinates returns the "lat,long" pair as the provider formats it
func (l Lookup) Coordinates() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.Loc })
}

func (l Lookup) Organization() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.Org })
}

func (l Lookup) Postal() (string, bool) {
	return l.field(func(m *models.IPMetadata) *string { return m.Postal })
}

func (l Lookup) field(get func(*models.IPMetadata) *string) (string, bool) {
	if !l.OK() {
		return "", false
	}

	value := get(l.metadata)
	if value == nil {
		return "", false
	}

	return *value, true
}
