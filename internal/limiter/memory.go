package limiter

import (
	"sync"
	"time"
)

const (
	idleBucketTTL   = 5 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// tokenBucket allows bursts of up to capacity requests and refills at rate tokens per second
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	rate       float64
	lastRefill time.Time
}

func newTokenBucket(rate float64, now time.Time) *tokenBucket {
	// A fractional rate such as 0.2 still needs room for one request
	capacity := max(rate, 1.0)

	return &tokenBucket{
		tokens:     capacity,
		capacity:   capacity,
		rate:       rate,
		lastRefill: now,
	}
}

func (b *tokenBucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.tokens+elapsed*b.rate, b.capacity)
	b.lastRefill = now

	if b.tokens < 1.0 {
		return false
	}

	b.tokens--
	return true
}

func (b *tokenBucket) idleSince(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.lastRefill)
}

// MemoryLimiter keeps one token bucket per client in process memory.
// Suitable for a single relay instance.
type MemoryLimiter struct {
	buckets sync.Map // client key -> *tokenBucket
	rate    float64
	now     func() time.Time

	cleanupMu   sync.Mutex
	lastCleanup time.Time
}

// NewMemoryLimiter creates an in-memory limiter
func NewMemoryLimiter(requestsPerSecond float64) *MemoryLimiter {
	return &MemoryLimiter{
		rate:        requestsPerSecond,
		now:         time.Now,
		lastCleanup: time.Now(),
	}
}

// Allow implements Limiter
func (l *MemoryLimiter) Allow(key string) bool {
	now := l.now()

	bucket, ok := l.buckets.Load(key)
	if !ok {
		bucket, _ = l.buckets.LoadOrStore(key, newTokenBucket(l.rate, now))
	}

	allowed := bucket.(*tokenBucket).take(now)
	l.maybeCleanup(now)

	return allowed
}

// maybeCleanup drops buckets of clients that have been idle for a while
func (l *MemoryLimiter) maybeCleanup(now time.Time) {
	l.cleanupMu.Lock()
	defer l.cleanupMu.Unlock()

	if now.Sub(l.lastCleanup) < cleanupInterval {
		return
	}

	l.buckets.Range(func(key, value any) bool {
		if value.(*tokenBucket).idleSince(now) > idleBucketTTL {
			l.buckets.Delete(key)
		}
		return true
	})

	l.lastCleanup = now
}

// Close implements Limiter. Nothing to release for the in-memory version.
func (l *MemoryLimiter) Close() error {
	return nil
}
