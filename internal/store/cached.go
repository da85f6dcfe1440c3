package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/voyagen/livechannels/internal/cache"
	"github.com/voyagen/livechannels/internal/models"
)

// ttlConfigs bounds how long a replica may serve a source list written by another replica.
const ttlConfigs = 2 * time.Minute

// CachedStore wraps a Store with a Redis read cache of the whole source list.
// Writes go to the inner store, then bump a generation counter and drop the
// cached copy. A read only publishes what it loaded if no write happened since
// it sampled the generation, so a list read before a write is never cached after it.
type CachedStore struct {
	inner  Store
	cache  *cache.Redis
	logger *slog.Logger
}

// NewCachedStore creates a CachedStore that wraps inner with Redis caching.
func NewCachedStore(inner Store, c *cache.Redis, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, cache: c, logger: logger}
}

func (c *CachedStore) GetLiveConfigs(ctx context.Context) ([]models.LiveSource, error) {
	v, err := cache.Get[[]models.LiveSource](ctx, c.cache, models.KeyLiveConfigs)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("cache get failed", "key", models.KeyLiveConfigs, "error", err)
	}

	// Sampled before the inner read.
	gen, genErr := cache.Generation(ctx, c.cache, models.KeyLiveConfigsGen)
	if genErr != nil {
		c.logger.Warn("cache generation failed", "key", models.KeyLiveConfigsGen, "error", genErr)
	}

	sources, err := c.inner.GetLiveConfigs(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return sources, nil
	}
	if _, err := cache.SetIfGeneration(ctx, c.cache, models.KeyLiveConfigsGen, gen, models.KeyLiveConfigs, sources, ttlConfigs); err != nil {
		c.logger.Warn("cache set failed", "key", models.KeyLiveConfigs, "error", err)
	}
	return sources, nil
}

func (c *CachedStore) SetLiveConfigs(ctx context.Context, sources []models.LiveSource) error {
	if err := c.inner.SetLiveConfigs(ctx, sources); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedStore) SetChannelNumber(ctx context.Context, key string, n int) error {
	if err := c.inner.SetChannelNumber(ctx, key, n); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate must run after the inner write: bump first so in-flight reads cannot republish, then drop.
func (c *CachedStore) invalidate(ctx context.Context) {
	if err := cache.BumpGeneration(ctx, c.cache, models.KeyLiveConfigsGen); err != nil {
		c.logger.Warn("cache bump generation failed", "key", models.KeyLiveConfigsGen, "error", err)
	}
	if err := cache.Del(ctx, c.cache, models.KeyLiveConfigs); err != nil {
		c.logger.Warn("cache del failed", "key", models.KeyLiveConfigs, "error", err)
	}
}
