// Package redis provides the run lock that keeps concurrent ghscrunch runs
// from writing the same outputs.
package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
)

// Client wraps a go-redis client.
type Client struct {
	rdb    *redis.Client
	prefix string
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewClient connects and pings the server described by cfg.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.CodeSinkConnect, "redis connection failed").
			WithDetailf("addr=%s", cfg.Addr)
	}
	log.Info("Connected to Redis", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return &Client{rdb: rdb, prefix: cfg.KeyPrefix, logger: log}, nil
}

// GetUnderlyingClient exposes the go-redis client.
func (c *Client) GetUnderlyingClient() *redis.Client {
	return c.rdb
}

// Key prepends the configured prefix.
func (c *Client) Key(parts ...string) string {
	k := c.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

// Close closes the client. Later calls are no-ops.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rdb.Close()
}
