// Package valkey caches computed equilibrium results in Valkey.
package valkey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache implements ports.CacheService on a Valkey client. Keys are stored
// under an optional prefix so several deployments can share one instance.
type Cache struct {
	client valkey.Client
	prefix string
}

// New connects to the Valkey server at addr.
func New(addr string) (*Cache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect %s: %w", addr, err)
	}
	return &Cache{client: client}, nil
}

// WithPrefix namespaces every key with prefix.
func (c *Cache) WithPrefix(prefix string) *Cache {
	c.prefix = prefix
	return c
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get returns the cached bytes for key, or ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get %s: %w", key, err)
	}
	return b, nil
}

// Set stores value under key for ttlSeconds. A non-positive TTL stores
// the value without expiry.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	var cmd valkey.Completed
	if ttlSeconds > 0 {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).
			Ex(time.Duration(ttlSeconds) * time.Second).Build()
	} else {
		cmd = c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value)).Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Do(ctx, c.client.B().Del().Key(c.key(key)).Build()).Error()
}

// Ping checks that the server answers; used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (c *Cache) Close() {
	c.client.Close()
}
