package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	redisclient "github.com/Adi-7i/Banquet/backend/internal/infrastructure/clients/redis"
	"github.com/Adi-7i/Banquet/backend/pkg/config"
)

// unreachableAdapter returns an adapter whose availability flag is down.
// With the flag down every operation must short-circuit before any I/O, so
// no Redis server is needed.
func unreachableAdapter() *RedisAdapter {
	client := redisclient.NewClient(&config.RedisConfig{Host: "127.0.0.1", Port: 1})
	a := &RedisAdapter{client: client, maxAttempts: 1}
	client.OnConnect(func() { a.available.Store(true) })
	return a
}

func TestRedisAdapter_UnavailableGet(t *testing.T) {
	a := unreachableAdapter()

	value, ok := a.Get(context.Background(), "banquet:search:deadbeef")
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestRedisAdapter_UnavailableSet(t *testing.T) {
	a := unreachableAdapter()

	ok := a.Set(context.Background(), "banquet:search:deadbeef", []byte("{}"), 300*time.Second)
	assert.False(t, ok)
}

func TestRedisAdapter_UnavailableInvalidate(t *testing.T) {
	a := unreachableAdapter()

	removed := a.InvalidateNamespace(context.Background(), "banquet:search:")
	assert.Equal(t, 0, removed)
}

func TestRedisAdapter_IsAvailable(t *testing.T) {
	a := unreachableAdapter()
	assert.False(t, a.IsAvailable())

	// transport connect hook re-signals connectivity
	a.available.Store(true)
	assert.True(t, a.IsAvailable())
}

func TestNewRedisAdapter_NegativeAttemptsClamped(t *testing.T) {
	client := redisclient.NewClient(&config.RedisConfig{Host: "127.0.0.1", Port: 1})

	a := NewRedisAdapter(client, -5)

	// uint64(-5) would mean practically unlimited retries
	assert.Equal(t, 0, a.maxAttempts)
	assert.False(t, a.IsAvailable())
}

func TestRedisAdapter_MarkUnavailableOnce(t *testing.T) {
	a := unreachableAdapter()
	a.available.Store(true)

	a.markUnavailable()
	assert.False(t, a.IsAvailable())

	// a second transition while already down must not flip anything back
	a.markUnavailable()
	assert.False(t, a.IsAvailable())
}
