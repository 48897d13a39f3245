package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wishwell/wishwell/internal/models"
)

const keyPrefix = "product-info:"

// ProductCache keeps recently extracted product infos in redis so
// re-parsing the same URL (item edit, duplicate adds) skips the outbound
// fetch. All redis failures are swallowed: a broken cache degrades to a
// cache miss, never to a request error.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "product_cache"),
	}
}

func (c *ProductCache) Get(ctx context.Context, url string) (models.ProductInfo, bool) {
	data, err := c.client.Get(ctx, keyPrefix+url).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "url", url, "error", err)
		}
		return models.ProductInfo{}, false
	}

	var info models.ProductInfo
	if err := json.Unmarshal(data, &info); err != nil {
		c.logger.Warn("cache entry corrupt", "url", url, "error", err)
		return models.ProductInfo{}, false
	}

	return info, true
}

func (c *ProductCache) Set(ctx context.Context, url string, info models.ProductInfo) {
	data, err := json.Marshal(info)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, keyPrefix+url, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "url", url, "error", err)
	}
}
