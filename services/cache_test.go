package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbase-backend/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisListCache(client, ttl), mr
}

func TestRedisListCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	listing := []models.Service{
		{ID: 1, Name: "Haircut", Price: 25},
		{ID: 2, Name: "Coloring", Price: 80},
	}
	cache.Populate(ctx, listing)

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, "Coloring", got[1].Name)
}

func TestRedisListCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Populate(ctx, []models.Service{{ID: 1, Name: "Haircut"}})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	// Idempotent
	cache.Invalidate(ctx)
	_, ok = cache.Get(ctx)
	assert.False(t, ok)
}

func TestRedisListCacheEntryExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cache.Populate(ctx, []models.Service{{ID: 1, Name: "Haircut"}})
	mr.FastForward(time.Minute + time.Second)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestRedisListCacheCorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set(listCacheKey, "{not json"))

	_, ok := cache.Get(context.Background())
	assert.False(t, ok)
}

func TestRedisListCacheDegradesWhenBackendDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	mr.Close()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	// Never raises, only logs
	cache.Populate(ctx, []models.Service{{ID: 1}})
	cache.Invalidate(ctx)
}
