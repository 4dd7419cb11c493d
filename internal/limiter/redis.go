package limiter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "geolocate:ratelimit"

// incrWithExpiry counts a request in the current window and arms the
// window's expiry on its first hit. Runs atomically on the server.
var incrWithExpiry = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return current
`)

// RedisOptions configures a RedisLimiter
type RedisOptions struct {
	Addr              string
	Password          string
	DB                int
	KeyPrefix         string
	RequestsPerSecond float64
}

// RedisLimiter shares a fixed-window counter per client between relay instances.
// Keys look like "<prefix>:<client>:<window number>" and expire on their own.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
	window    time.Duration
	limit     int64
	now       func() time.Time
}

// NewRedisLimiter connects to Redis and prepares the limiter
func NewRedisLimiter(opts RedisOptions) (*RedisLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis for rate limiting: %w", err)
	}

	// Fractional rates get a longer window, e.g. 0.2 req/s -> 1 request per 5 seconds
	window := time.Second
	if opts.RequestsPerSecond < 1.0 {
		window = time.Duration(float64(time.Second) / opts.RequestsPerSecond)
	}

	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &RedisLimiter{
		client:    client,
		keyPrefix: prefix,
		window:    window,
		limit:     int64(math.Ceil(opts.RequestsPerSecond * window.Seconds())),
		now:       time.Now,
	}, nil
}

// Allow implements Limiter. Redis errors fail open.
func (l *RedisLimiter) Allow(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	windowNumber := l.now().UnixNano() / int64(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.keyPrefix, key, windowNumber)
	ttl := int(math.Ceil(l.window.Seconds())) * 2

	count, err := incrWithExpiry.Run(ctx, l.client, []string{redisKey}, ttl).Int64()
	if err != nil {
		return true
	}

	return count <= l.limit
}

// Close closes the Redis connection
func (l *RedisLimiter) Close() error {
	if l.client != nil {
		return l.client.Close()
	}
	return nil
}
