package providers

import (
	"context"
	"time"
)

// CacheProvider defines the interface for the search cache tier. Every
// operation is best-effort: implementations absorb transport and
// serialization failures and report them as a miss, a failed set or a zero
// sweep instead of returning application errors.
type CacheProvider interface {
	// Get retrieves a value from cache. A miss, an unavailable cache and a
	// transport failure all return (nil, false).
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with a TTL and reports whether the write happened.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool

	// InvalidateNamespace removes every key under the given prefix and
	// returns the number of removed entries.
	InvalidateNamespace(ctx context.Context, prefix string) int

	// IsAvailable reports the live connectivity flag.
	IsAvailable() bool
}
