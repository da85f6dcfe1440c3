package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/voyagen/livechannels/internal/models"
)

// ConfigStore holds the ordered live source list with replace-all writes.
type ConfigStore interface {
	GetLiveConfigs(ctx context.Context) ([]models.LiveSource, error)
	SetLiveConfigs(ctx context.Context, sources []models.LiveSource) error
}

// ChannelNumberSetter is implemented by config stores that can update one
// source's channel count without rewriting the whole list.
type ChannelNumberSetter interface {
	SetChannelNumber(ctx context.Context, key string, n int) error
}

// PlaylistFetcher downloads and parses a playlist. An empty userAgent means no override.
type PlaylistFetcher interface {
	FetchAndParse(ctx context.Context, url string, userAgent string) ([]models.Channel, error)
}

// ChannelCache maps source keys to cached channel lists. Get returns nil, nil when absent.
type ChannelCache interface {
	Get(ctx context.Context, key string) (*models.CachedChannels, error)
	Set(ctx context.Context, key string, value *models.CachedChannels) error
}

// Locker serializes read-modify-write of the whole config store.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}
