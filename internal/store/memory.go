package store

import (
	"context"
	"sync"

	"github.com/voyagen/livechannels/internal/models"
)

// Memory is an in-process Store. It is used in tests and when the source
// list is only managed through the API.
type Memory struct {
	mu      sync.RWMutex
	sources []models.LiveSource
}

// NewMemory creates a Memory store seeded with sources.
func NewMemory(sources ...models.LiveSource) *Memory {
	return &Memory{sources: cloneSources(sources)}
}

func (m *Memory) GetLiveConfigs(_ context.Context) ([]models.LiveSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSources(m.sources), nil
}

func (m *Memory) SetLiveConfigs(_ context.Context, sources []models.LiveSource) error {
	m.mu.Lock()
	m.sources = cloneSources(sources)
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetChannelNumber(_ context.Context, key string, n int) error {
	m.mu.Lock()
	setChannelNumber(m.sources, key, n)
	m.mu.Unlock()
	return nil
}
