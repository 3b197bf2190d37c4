// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/skanenje/prompt-enhancer/internal/common/database"
	"github.com/skanenje/prompt-enhancer/internal/common/logger"
)

const (
	cacheKeyList   = "frameworks:list"
	cacheKeyPrefix = "frameworks:def:"
)

// CachedStore puts a short-TTL redis read cache in front of another Store.
// Save writes through and invalidates, so an upload is visible on the next
// lookup even across processes sharing the cache.
type CachedStore struct {
	inner  Store
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCached(inner Store, rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "framework-cache"}),
	}
}

func (c *CachedStore) List(ctx context.Context) ([]Summary, error) {
	if val, err := c.redis.Get(ctx, cacheKeyList); err == nil {
		var items []Summary
		if err := json.Unmarshal([]byte(val), &items); err == nil {
			return items, nil
		}
	}

	items, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := c.redis.Set(ctx, cacheKeyList, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{"key": cacheKeyList, "error": err.Error()})
		}
	}
	return items, nil
}

func (c *CachedStore) Get(ctx context.Context, id string) (*Framework, error) {
	key := cacheKeyPrefix + strings.ToLower(id)
	if val, err := c.redis.Get(ctx, key); err == nil {
		var fw Framework
		if err := json.Unmarshal([]byte(val), &fw); err == nil {
			return &fw, nil
		}
	}

	fw, err := c.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(fw); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return fw, nil
}

func (c *CachedStore) Save(ctx context.Context, def []byte) (*Framework, error) {
	fw, err := c.inner.Save(ctx, def)
	if err != nil {
		return nil, err
	}

	if err := c.redis.Del(ctx, cacheKeyList, cacheKeyPrefix+strings.ToLower(fw.ID)); err != nil {
		c.logger.Warn("cache invalidation failed", map[string]interface{}{
			"frameworkId": fw.ID,
			"error":       err.Error(),
		})
	}
	return fw, nil
}
