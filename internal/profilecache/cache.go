// Package profilecache keeps the last normalized profile of each user so
// API reads do not go back to the provider.
package profilecache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"oauth-userdata/internal/userdata"
)

// Cache stores normalized profiles by internal user id. Get returns
// (nil, nil) on a miss.
type Cache interface {
	Set(ctx context.Context, userID string, ud *userdata.UserData) error
	Get(ctx context.Context, userID string) (*userdata.UserData, error)
}

type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: "profile:",
	}
}

func (c *RedisCache) Set(ctx context.Context, userID string, ud *userdata.UserData) error {
	data, err := json.Marshal(ud)
	if err != nil {
		return fmt.Errorf("profilecache: marshal: %w", err)
	}
	return c.client.Set(ctx, c.prefix+userID, data, c.ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, userID string) (*userdata.UserData, error) {
	data, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// numbers in Extra stay json.Number, as the extractor produced them
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var ud userdata.UserData
	if err := dec.Decode(&ud); err != nil {
		return nil, fmt.Errorf("profilecache: unmarshal: %w", err)
	}
	return &ud, nil
}

type entry struct {
	ud      *userdata.UserData
	expires time.Time
}

// MemoryCache is the in-process Cache used when Redis is not configured.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *MemoryCache) Set(_ context.Context, userID string, ud *userdata.UserData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = entry{ud: ud, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, userID string) (*userdata.UserData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[userID]
	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, userID)
		return nil, nil
	}
	return e.ud, nil
}
