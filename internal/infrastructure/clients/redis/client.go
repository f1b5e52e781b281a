package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/Adi-7i/Banquet/backend/pkg/config"
)

// Client represents a Redis client. Unlike the database client, construction
// never fails on an unreachable server: the cache tier is optional and
// tracks connectivity itself.
type Client struct {
	client *redis.Client

	mu        sync.RWMutex
	onConnect []func()
}

// NewClient creates a new Redis client
func NewClient(cfg *config.RedisConfig) *Client {
	c := &Client{}
	c.client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			c.notifyConnect()
			return nil
		},
	})
	return c
}

// Client returns the underlying Redis client
func (c *Client) Client() *redis.Client {
	return c.client
}

// OnConnect registers a callback invoked whenever the transport establishes
// a connection, including reconnects after an outage.
func (c *Client) OnConnect(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnect = append(c.onConnect, fn)
}

func (c *Client) notifyConnect() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, fn := range c.onConnect {
		fn()
	}
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Ping verifies the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
