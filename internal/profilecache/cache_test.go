package profilecache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oauth-userdata/internal/redis/redistest"
	"oauth-userdata/internal/userdata"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	miss, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	id := "g-1"
	require.NoError(t, c.Set(ctx, "u1", &userdata.UserData{UniqueID: &id}))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g-1", *got.UniqueID)

	now = now.Add(time.Minute)
	got, err = c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	client := redistest.New()
	c := NewRedisCache(client, 15*time.Minute)

	miss, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	id := "g-1"
	ud := &userdata.UserData{
		UniqueID: &id,
		Websites: []string{"https://example.com"},
		Extra: map[string]any{
			"followers": json.Number("9007199254740993"),
			"locale":    "en",
		},
	}
	require.NoError(t, c.Set(ctx, "u1", ud))

	_, stored := client.Stored("profile:u1")
	assert.True(t, stored)
	assert.Equal(t, 15*time.Minute, client.Expiration("profile:u1"))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "g-1", *got.UniqueID)
	assert.Nil(t, got.Email)
	assert.Equal(t, []string{"https://example.com"}, got.Websites)
	assert.Equal(t, ud.Extra, got.Extra)
}

func TestRedisCache_Errors(t *testing.T) {
	ctx := context.Background()
	client := redistest.New()
	c := NewRedisCache(client, time.Minute)

	require.NoError(t, client.Set(ctx, "profile:u1", "not json", 0).Err())
	_, err := c.Get(ctx, "u1")
	assert.ErrorContains(t, err, "unmarshal")

	down := errors.New("connection refused")
	client.Err = down
	_, err = c.Get(ctx, "u1")
	assert.ErrorIs(t, err, down)
	assert.ErrorIs(t, c.Set(ctx, "u1", &userdata.UserData{}), down)
}
