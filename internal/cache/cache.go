// Package cache wraps Redis for read-through list caching and windowed
// counters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	// GetJSON decodes the cached value into dst and reports whether it was
	// present.
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Incr bumps a counter whose window starts at the first increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Decr(ctx context.Context, key string) error
}

type Client struct {
	Cli    *redis.Client
	prefix string
}

func NewRedis(cli *redis.Client, prefix string) *Client {
	return &Client{Cli: cli, prefix: prefix}
}

func (c *Client) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

func (c *Client) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	b, err := c.Cli.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Cli.Set(ctx, c.key(key), b, ttl).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.Cli.Del(ctx, full...).Err()
}

func (c *Client) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.key(key)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	if _, err := c.Cli.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		ttl = p.TTL(ctx, k)
		return nil
	}); err != nil {
		return 0, err
	}
	// A counter without a TTL would never reset; this also repairs keys an
	// earlier failed EXPIRE left behind.
	if ttl.Val() < 0 {
		if err := c.Cli.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return incr.Val(), nil
}

func (c *Client) Decr(ctx context.Context, key string) error {
	return c.Cli.Decr(ctx, c.key(key)).Err()
}

func (c *Client) Close() error {
	return c.Cli.Close()
}

// Noop is used when Redis is disabled: nothing is cached and counters
// never advance.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error)         { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error  { return nil }
func (Noop) Delete(context.Context, ...string) error                    { return nil }
func (Noop) Incr(context.Context, string, time.Duration) (int64, error) { return 0, nil }
func (Noop) Decr(context.Context, string) error                         { return nil }
