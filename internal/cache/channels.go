package cache

import (
	"context"
	"errors"
	"sync"

	"github.com/voyagen/livechannels/internal/models"
)

// Memory is an in-process channel cache keyed by source key.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]models.CachedChannels
}

// NewMemory creates an empty in-process channel cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]models.CachedChannels)}
}

// Get returns the entry for key, or nil when there is none.
func (m *Memory) Get(_ context.Context, key string) (*models.CachedChannels, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

// Set replaces the entry for key.
func (m *Memory) Set(_ context.Context, key string, value *models.CachedChannels) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = *value
	return nil
}

// Len returns the number of cached sources.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// RedisChannels stores channel lists in Redis under live:channels:{sourceKey}.
// Entries never expire in Redis; freshness is judged by the reader from ExpireTime.
type RedisChannels struct {
	r *Redis
}

// NewRedisChannels creates a Redis-backed channel cache.
func NewRedisChannels(r *Redis) *RedisChannels {
	return &RedisChannels{r: r}
}

// Get returns the entry for key, or nil when there is none.
func (c *RedisChannels) Get(ctx context.Context, key string) (*models.CachedChannels, error) {
	v, err := Get[models.CachedChannels](ctx, c.r, models.ChannelsKey(key))
	if errors.Is(err, ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Set replaces the entry for key.
func (c *RedisChannels) Set(ctx context.Context, key string, value *models.CachedChannels) error {
	return Set(ctx, c.r, models.ChannelsKey(key), value, 0)
}
