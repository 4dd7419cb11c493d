package models

import "time"

// IPMetadata is the subset of the ipinfo.io response we care about.
// Every field is optional: a nil pointer means the provider omitted the key.
type IPMetadata struct {
	IP       *string `json:"ip,omitempty"`
	Hostname *string `json:"hostname,omitempty"`
	City     *string `json:"city,omitempty"`
	Region   *string `json:"region,omitempty"`
	Country  *string `json:"country,omitempty"`
	Loc      *string `json:"loc,omitempty"` // "lat,long"
	Org      *string `json:"org,omitempty"`
	Postal   *string `json:"postal,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// TimeZone is the Google Time Zone API answer for a coordinate pair
type TimeZone struct {
	TimeZoneID   string `json:"timeZoneId"`
	TimeZoneName string `json:"timeZoneName"`
	RawOffset    int64  `json:"rawOffset"` // seconds
	DstOffset    int64  `json:"dstOffset"` // seconds
	Status       string `json:"status,omitempty"`
}

// LocalTime shifts now (taken as UTC) by the zone's raw and daylight offsets
func (tz *TimeZone) LocalTime(now time.Time) time.Time {
	offset := time.Duration(tz.RawOffset+tz.DstOffset) * time.Second
	return now.UTC().Add(offset)
}

// LocationResponse is the body of GET /api/location.
// Loc is serialized as null when the coordinates are unavailable.
type LocationResponse struct {
	Loc *string `json:"loc"`
}

// SelfIPResponse is the body of GET /api/ip
type SelfIPResponse struct {
	IP    string `json:"ip"`
	Valid bool   `json:"valid"`
}

// TimeZoneResponse is the body of GET /api/timezone
type TimeZoneResponse struct {
	TimeZoneID   string `json:"timeZoneId"`
	TimeZoneName string `json:"timeZoneName"`
	RawOffset    int64  `json:"rawOffset"`
	DstOffset    int64  `json:"dstOffset"`
	LocalTime    string `json:"localTime"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}
