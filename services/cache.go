package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"salonbase-backend/models"
)

const listCacheKey = "services:list"

// ListCache holds the full unpaginated service listing; pages are sliced
// from it by the caller and partial pages are never written back.
// Implementations degrade to a miss on any backend failure — cache trouble
// is never a user-visible error.
//
// Invalidate and Populate are not mutually excluded across requests: a
// Populate from a slow miss path can land after a concurrent mutation's
// Invalidate and briefly resurrect a stale listing. The entry TTL bounds
// how long that window lasts.
type ListCache interface {
	Get(ctx context.Context) ([]models.Service, bool)
	Populate(ctx context.Context, services []models.Service)
	Invalidate(ctx context.Context)
}

// RedisListCache stores the listing as one JSON blob with a TTL.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context) ([]models.Service, bool) {
	data, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("List cache read failed, treating as miss")
		}
		return nil, false
	}

	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		logrus.WithError(err).Warn("List cache entry corrupt, treating as miss")
		return nil, false
	}
	return services, true
}

func (c *RedisListCache) Populate(ctx context.Context, services []models.Service) {
	data, err := json.Marshal(services)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode service listing for cache")
		return
	}
	if err := c.client.Set(ctx, listCacheKey, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("List cache populate failed")
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listCacheKey).Err(); err != nil {
		logrus.WithError(err).Warn("List cache invalidate failed")
	}
}

// NoopListCache always misses. It stands in when Redis is unreachable at
// startup.
type NoopListCache struct{}

func (NoopListCache) Get(ctx context.Context) ([]models.Service, bool)        { return nil, false }
func (NoopListCache) Populate(ctx context.Context, services []models.Service) {}
func (NoopListCache) Invalidate(ctx context.Context)                          {}
