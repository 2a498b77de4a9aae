package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resume-renderer/internal/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "render:"

// RedisCache keeps render responses keyed by request digest. A nil client
// disables it: Get always misses and Set does nothing.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*model.RenderResponse, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var resp model.RenderResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, resp *model.RenderResponse) error {
	if c == nil || c.client == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, b, c.ttl).Err()
}
