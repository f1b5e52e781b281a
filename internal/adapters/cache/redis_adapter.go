package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Adi-7i/Banquet/backend/internal/domain/providers"
	redisclient "github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/redis"
)

const (
	probeTimeout       = 2 * time.Second
	reconnectInitial   = 100 * time.Millisecond
	reconnectCap       = 3 * time.Second
	invalidateScanSize = 100
)

// RedisAdapter implements the CacheProvider interface using Redis.
//
// All operations are best-effort. A live availability flag gates every
// operation: while the flag is down nothing touches the network, callers see
// misses, and a single reconnection loop probes the server with capped
// exponential backoff. If the loop exhausts its attempts the process runs
// cacheless until the transport itself re-signals connectivity through the
// client's connect hook.
type RedisAdapter struct {
	client       *redisclient.Client
	maxAttempts  int
	available    atomic.Bool
	reconnecting atomic.Bool
}

// NewRedisAdapter creates a new Redis cache adapter and probes the server
// once. An unreachable server is not an error; the adapter starts in the
// unavailable state and keeps trying in the background.
func NewRedisAdapter(client *redisclient.Client, reconnectAttempts int) *RedisAdapter {
	// a negative attempt count would underflow the backoff retry cap
	if reconnectAttempts < 0 {
		reconnectAttempts = 0
	}
	a := &RedisAdapter{
		client:      client,
		maxAttempts: reconnectAttempts,
	}
	client.OnConnect(func() {
		a.available.Store(true)
	})

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("cache unreachable at startup, search will run against the database")
		a.startReconnect()
	} else {
		a.available.Store(true)
	}

	return a
}

var _ providers.CacheProvider = (*RedisAdapter)(nil)

// IsAvailable reports the live connectivity flag.
func (a *RedisAdapter) IsAvailable() bool {
	return a.available.Load()
}

// Get retrieves a value from cache. Unavailability, a miss and a transport
// failure are indistinguishable to the caller.
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, bool) {
	if !a.available.Load() {
		return nil, false
	}

	value, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		a.markUnavailable()
		return nil, false
	}
	return value, true
}

// Set stores a value with a TTL and reports whether the write happened.
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if !a.available.Load() {
		return false
	}

	if err := a.client.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		a.markUnavailable()
		return false
	}
	return true
}

// InvalidateNamespace removes every key under the prefix and returns the
// number of removed entries. A partial sweep returns the count removed so
// far.
func (a *RedisAdapter) InvalidateNamespace(ctx context.Context, prefix string) int {
	if !a.available.Load() {
		return 0
	}

	removed := 0
	iter := a.client.Client().Scan(ctx, 0, prefix+"*", invalidateScanSize).Iterator()
	batch := make([]string, 0, invalidateScanSize)

	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		n, err := a.client.Client().Del(ctx, batch...).Result()
		removed += int(n)
		batch = batch[:0]
		if err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache namespace sweep failed")
			a.markUnavailable()
			return false
		}
		return true
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= invalidateScanSize {
			if !flush() {
				return removed
			}
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Str("prefix", prefix).Msg("cache namespace scan failed")
		a.markUnavailable()
		return removed
	}
	flush()

	return removed
}

// markUnavailable drops the flag and kicks one reconnection loop. Only the
// first caller after a transition starts the loop.
func (a *RedisAdapter) markUnavailable() {
	if a.available.CompareAndSwap(true, false) {
		a.startReconnect()
	}
}

func (a *RedisAdapter) startReconnect() {
	if !a.reconnecting.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer a.reconnecting.Store(false)

		b := backoff.NewExponentialBackOff()
		b.InitialInterval = reconnectInitial
		b.MaxInterval = reconnectCap
		b.MaxElapsedTime = 0

		err := backoff.Retry(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
			defer cancel()
			return a.client.Ping(ctx)
		}, backoff.WithMaxRetries(b, uint64(a.maxAttempts)))

		if err != nil {
			log.Warn().Err(err).Int("attempts", a.maxAttempts).
				Msg("cache reconnection exhausted, running cacheless")
			return
		}

		a.available.Store(true)
		log.Info().Msg("cache connectivity restored")
	}()
}
