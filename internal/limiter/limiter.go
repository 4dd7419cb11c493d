package limiter

import (
	"fmt"
	"strings"
)

// Limiter decides whether a client of the relay may make another request.
// It only guards inbound traffic; upstream providers are never throttled here.
type Limiter interface {
	// Allow reports whether a request from the given client key may proceed
	Allow(key string) bool

	// Close releases connections and background resources
	Close() error
}

// Config holds configuration for creating a rate limiter
type Config struct {
	Type              string  // "memory" or "redis"
	RequestsPerSecond float64 // can be fractional, e.g. 0.2 = 1 request per 5 seconds

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
}

// New creates a rate limiter based on the configuration
func New(cfg Config) (Limiter, error) {
	if cfg.RequestsPerSecond <= 0 {
		return nil, fmt.Errorf("requests per second must be positive, got %v", cfg.RequestsPerSecond)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "memory", "":
		return NewMemoryLimiter(cfg.RequestsPerSecond), nil

	case "redis":
		lim, err := NewRedisLimiter(RedisOptions{
			Addr:              cfg.RedisAddr,
			Password:          cfg.RedisPassword,
			DB:                cfg.RedisDB,
			KeyPrefix:         cfg.RedisKeyPrefix,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis limiter: %w", err)
		}
		return lim, nil

	default:
		return nil, fmt.Errorf("unknown rate limiter type: %s (supported: 'memory', 'redis')", cfg.Type)
	}
}
