package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"meal-delivery-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache memoizes optimized visiting orders in Redis.
type RedisRouteCache struct {
	rdb *redis.Client
}

func NewRedisRouteCache(rdb *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb}
}

func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (c *RedisRouteCache) GetSequence(ctx context.Context, key string) (_ []int, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.GetSequence")(&err)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache %q: %w", key, err)
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("decode route cache %q: %w", key, err)
	}
	return ids, true, nil
}

// PutSequence stores ids under key; a zero ttl keeps the entry forever.
func (c *RedisRouteCache) PutSequence(ctx context.Context, key string, stopIDs []int, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.PutSequence")(&err)

	if stopIDs == nil {
		stopIDs = []int{}
	}
	raw, err := json.Marshal(stopIDs)
	if err != nil {
		return fmt.Errorf("encode route cache %q: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put route cache %q: %w", key, err)
	}
	return nil
}
