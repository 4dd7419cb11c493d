package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults tests the values used when nothing is set
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GOOGLE_MAPS_API_KEY", "RATE_LIMITER_TYPE", "CORS_ALLOWED_ORIGINS", "SNAPSHOT_PATH", "UPSTREAM_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.GoogleMapsAPIKey != "" {
		t.Errorf("expected no default API key, got %q", cfg.GoogleMapsAPIKey)
	}
	if cfg.IPInfoURL != "https://ipinfo.io/json" {
		t.Errorf("unexpected ipinfo url %s", cfg.IPInfoURL)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.UpstreamTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SnapshotPath != "place_details.txt" {
		t.Errorf("unexpected snapshot path %s", cfg.SnapshotPath)
	}
	if cfg.SnapshotLat != 40.714224 || cfg.SnapshotLng != -73.961452 {
		t.Errorf("unexpected snapshot coordinates %v,%v", cfg.SnapshotLat, cfg.SnapshotLng)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

// TestLoad_FromEnvironment tests overriding values
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GOOGLE_MAPS_API_KEY", "from-env")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://example.com ,")
	t.Setenv("RATE_LIMIT", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "5")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("SNAPSHOT_LAT", "51.5")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.GoogleMapsAPIKey != "from-env" {
		t.Errorf("expected key from env, got %q", cfg.GoogleMapsAPIKey)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://example.com" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RequestsPerSecond() != 2.0 {
		t.Errorf("expected 2 req/s, got %v", cfg.RequestsPerSecond())
	}
	if cfg.LogPretty {
		t.Error("expected pretty logging to be disabled")
	}
	if cfg.SnapshotLat != 51.5 {
		t.Errorf("expected latitude 51.5, got %v", cfg.SnapshotLat)
	}
}

// TestLoad_InvalidNumbers tests the fallback for unparsable numbers
func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT", "ten")
	t.Setenv("SNAPSHOT_LNG", "east")

	cfg := Load()

	if cfg.RateLimit != 10 {
		t.Errorf("expected default rate limit, got %d", cfg.RateLimit)
	}
	if cfg.SnapshotLng != -73.961452 {
		t.Errorf("expected default longitude, got %v", cfg.SnapshotLng)
	}
}

// TestValidate tests rejected configurations
func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non numeric port", func(c *Config) { c.Port = "http" }},
		{"bad ipinfo url", func(c *Config) { c.IPInfoURL = "not a url" }},
		{"unknown limiter", func(c *Config) { c.RateLimitType = "etcd" }},
		{"zero window", func(c *Config) { c.RateLimitWindow = 0 }},
		{"redis without address", func(c *Config) { c.RateLimitType = "redis"; c.RedisAddr = "" }},
		{"latitude out of range", func(c *Config) { c.SnapshotLat = 91 }},
		{"longitude out of range", func(c *Config) { c.SnapshotLng = -181 }},
		{"no origins", func(c *Config) { c.CORSAllowedOrigins = nil }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			cfg := Load()
			tt.mutate(cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
