package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouteCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisRouteCache(rdb), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestRouteCache(t)
	ctx := context.Background()

	_, ok, err := c.GetSequence(ctx, "route:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.PutSequence(ctx, "route:abc", []int{3, 1, 2}, time.Hour))

	ids, ok, err := c.GetSequence(ctx, "route:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestRedisRouteCacheExpires(t *testing.T) {
	c, mr := newTestRouteCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutSequence(ctx, "route:ttl", []int{1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.GetSequence(ctx, "route:ttl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRouteCacheEmptySequence(t *testing.T) {
	c, _ := newTestRouteCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutSequence(ctx, "route:empty", nil, 0))

	ids, ok, err := c.GetSequence(ctx, "route:empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	c, mr := newTestRouteCache(t)
	require.NoError(t, mr.Set("route:bad", "not json"))

	_, _, err := c.GetSequence(context.Background(), "route:bad")
	assert.Error(t, err)
}
