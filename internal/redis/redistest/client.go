// Package redistest provides an in-memory stand-in for the few redis
// commands the stores issue.
package redistest

import (
	"context"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client records GET/SET/DEL against a map. Any other command panics
// through the nil embedded Cmdable.
type Client struct {
	goredis.Cmdable

	// Err, when set, is returned by every command.
	Err error

	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func New() *Client {
	return &Client{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *Client) Set(_ context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	if c.Err != nil {
		return goredis.NewStatusResult("", c.Err)
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = s
	c.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func (c *Client) Get(_ context.Context, key string) *goredis.StringCmd {
	if c.Err != nil {
		return goredis.NewStringResult("", c.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (c *Client) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	if c.Err != nil {
		return goredis.NewIntResult(0, c.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			delete(c.ttls, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

// Expiration returns the expiration passed with the last SET of key.
func (c *Client) Expiration(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// Stored returns the stored value of key.
func (c *Client) Stored(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok
}
