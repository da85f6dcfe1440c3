// Package store persists the ordered list of live sources.
package store

import (
	"context"

	"github.com/voyagen/livechannels/internal/models"
)

// Store holds the live source list. SetLiveConfigs replaces the whole list;
// SetChannelNumber updates the channel count of every entry with key and is
// a no-op when no entry matches.
type Store interface {
	GetLiveConfigs(ctx context.Context) ([]models.LiveSource, error)
	SetLiveConfigs(ctx context.Context, sources []models.LiveSource) error
	SetChannelNumber(ctx context.Context, key string, n int) error
}

func cloneSources(sources []models.LiveSource) []models.LiveSource {
	out := make([]models.LiveSource, len(sources))
	copy(out, sources)
	return out
}

func setChannelNumber(sources []models.LiveSource, key string, n int) bool {
	found := false
	for i := range sources {
		if sources[i].Key == key {
			sources[i].ChannelNumber = n
			found = true
		}
	}
	return found
}
