package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Credentials only ever come from the environment or a local .env file.
type Config struct {
	// Server configuration
	Port string `validate:"required,numeric"`

	// Logging
	LogLevel  string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool
	LogFile   string

	// Upstream providers
	IPifyURL          string `validate:"required,url"`
	IPInfoURL         string `validate:"required,url"`
	IPInfoToken       string
	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string        `validate:"required,url"`
	UpstreamTimeout   time.Duration `validate:"gte=0"`

	// Relay
	CORSAllowedOrigins []string `validate:"min=1,dive,required"`

	// Inbound rate limiting
	RateLimitType   string `validate:"oneof=memory redis"`
	RateLimit       int    `validate:"gt=0"` // number of requests allowed
	RateLimitWindow int    `validate:"gt=0"` // time window in seconds

	// Redis configuration (rate limiter only)
	RedisAddr     string `validate:"required_if=RateLimitType redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	// Place details snapshot
	SnapshotLat  float64 `validate:"latitude"`
	SnapshotLng  float64 `validate:"longitude"`
	SnapshotPath string  `validate:"required"`
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port: getEnv("PORT", "5000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		LogFile:   getEnv("LOG_FILE", ""),

		IPifyURL:          getEnv("IPIFY_URL", "https://api64.ipify.org?format=json"),
		IPInfoURL:         getEnv("IPINFO_URL", "https://ipinfo.io/json"),
		IPInfoToken:       getEnv("IPINFO_TOKEN", ""),
		GoogleMapsAPIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
		GoogleMapsBaseURL: getEnv("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		UpstreamTimeout:   time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RateLimitType:   getEnv("RATE_LIMITER_TYPE", "memory"),
		RateLimit:       getEnvAsInt("RATE_LIMIT", 10),
		RateLimitWindow: getEnvAsInt("RATE_LIMIT_WINDOW", 1),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		SnapshotLat:  getEnvAsFloat("SNAPSHOT_LAT", 40.714224),
		SnapshotLng:  getEnvAsFloat("SNAPSHOT_LNG", -73.961452),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "place_details.txt"),
	}
}

// Validate checks the loaded values against the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// RequestsPerSecond is the effective inbound rate, e.g. 10 requests per 5 seconds = 2.0
func (c *Config) RequestsPerSecond() float64 {
	return float64(c.RateLimit) / float64(c.RateLimitWindow)
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt reads an environment variable as an integer.
// Returns default if not set or invalid.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsFloat reads an environment variable as a float64.
// Returns default if not set or invalid.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty items
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}

	return values
}
