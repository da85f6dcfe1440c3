package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/voyagen/livechannels/internal/metrics"
	"github.com/voyagen/livechannels/internal/models"
)

// DefaultFetchTimeout bounds a single playlist fetch when no timeout is configured.
const DefaultFetchTimeout = 30 * time.Second

// Result is the channel listing returned for a source.
type Result struct {
	Source     models.SourceRef
	Channels   []models.Channel
	Cached     bool
	UpdateTime int64
}

// LiveChannels is the read-through cache for live channel listings.
// It serves fresh cache entries, refreshes stale or missing ones from the
// playlist fetcher, and keeps each source's channel count in the config store.
type LiveChannels struct {
	configs      ConfigStore
	cache        ChannelCache
	fetcher      PlaylistFetcher
	locker       Locker
	logger       *slog.Logger
	now          func() time.Time
	fetchTimeout time.Duration

	// inflight collapses concurrent refreshes of one source into a single fetch.
	inflight singleflight.Group
}

// Option configures LiveChannels.
type Option func(*LiveChannels)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *LiveChannels) { l.now = now }
}

// WithLocker replaces the in-process config store lock, e.g. with a Redis lock shared by replicas.
func WithLocker(locker Locker) Option {
	return func(l *LiveChannels) { l.locker = locker }
}

// WithFetchTimeout bounds each playlist fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *LiveChannels) { l.fetchTimeout = d }
}

// NewLiveChannels creates the read-through coordinator.
func NewLiveChannels(configs ConfigStore, cache ChannelCache, fetcher PlaylistFetcher, logger *slog.Logger, opts ...Option) *LiveChannels {
	l := &LiveChannels{
		configs:      configs,
		cache:        cache,
		fetcher:      fetcher,
		locker:       NewMutexLocker(),
		logger:       logger,
		now:          time.Now,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// GetChannels returns the channels of sourceKey, from cache when fresh.
//
// Errors: ErrInvalidRequest, ErrSourceNotFound, ErrSourceDisabled, *FetchError,
// or any other error for internal failures. Cache and config are only written
// after a successful fetch.
func (l *LiveChannels) GetChannels(ctx context.Context, sourceKey string) (*Result, error) {
	source, err := l.lookup(ctx, sourceKey)
	if err != nil {
		return nil, err
	}

	entry, err := l.cache.Get(ctx, source.Key)
	if err != nil {
		// An unreadable cache is treated as a miss.
		l.logger.Warn("cache read failed", "source", source.Key, "error", err)
		entry = nil
	}
	if entry.IsFresh(l.now()) {
		metrics.RecordCacheHit(source.Key)
		return &Result{
			Source:     source.Ref(),
			Channels:   entry.Channels,
			Cached:     true,
			UpdateTime: entry.UpdateTime,
		}, nil
	}

	metrics.RecordCacheMiss(source.Key)
	return l.refresh(ctx, *source)
}

// Refresh fetches sourceKey's playlist regardless of cache freshness.
func (l *LiveChannels) Refresh(ctx context.Context, sourceKey string) (*Result, error) {
	source, err := l.lookup(ctx, sourceKey)
	if err != nil {
		return nil, err
	}
	return l.refresh(ctx, *source)
}

// Validate checks that sourceKey names an enabled source without touching the cache.
func (l *LiveChannels) Validate(ctx context.Context, sourceKey string) error {
	_, err := l.lookup(ctx, sourceKey)
	return err
}

// lookup loads the config list and returns the first enabled source with the key.
func (l *LiveChannels) lookup(ctx context.Context, sourceKey string) (*models.LiveSource, error) {
	if sourceKey == "" {
		return nil, invalidf("missing source parameter")
	}
	sources, err := l.configs.GetLiveConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetLiveConfigs: %w", err)
	}
	source := models.FindLiveSource(sources, sourceKey)
	if source == nil {
		return nil, ErrSourceNotFound
	}
	if source.Disabled {
		return nil, ErrSourceDisabled
	}
	return source, nil
}

// refresh runs at most one fetch per source at a time; concurrent callers share its result.
func (l *LiveChannels) refresh(ctx context.Context, source models.LiveSource) (*Result, error) {
	ch := l.inflight.DoChan(source.Key, func() (val any, err error) {
		// DoChan re-panics in a new goroutine, which would take the process down.
		defer func() {
			if p := recover(); p != nil {
				l.logger.Error("refresh panicked", "source", source.Key, "panic", p)
				val, err = nil, fmt.Errorf("refresh %s: panic: %v", source.Key, p)
			}
		}()
		// The shared refresh must not fail because the first caller went away.
		return l.doRefresh(context.WithoutCancel(ctx), source)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.RecordSharedRefresh(source.Key)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.(*Result)
		out := *shared
		return &out, nil
	}
}

func (l *LiveChannels) doRefresh(ctx context.Context, source models.LiveSource) (*Result, error) {
	now := l.now()
	logger := l.logger.With("source", source.Key)

	fetchCtx := ctx
	if l.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.fetchTimeout)
		defer cancel()
	}

	start := time.Now()
	channels, err := l.fetcher.FetchAndParse(fetchCtx, source.URL, source.UserAgent)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RecordRefreshFailure(source.Key, "fetch")
		logger.Warn("playlist refresh failed", "url", source.URL, "error", err)
		return nil, &FetchError{SourceKey: source.Key, Err: err}
	}
	if channels == nil {
		channels = []models.Channel{}
	}

	entry := models.NewCachedChannels(channels, now, models.ChannelCacheTTL)
	if err := l.cache.Set(ctx, source.Key, entry); err != nil {
		metrics.RecordRefreshFailure(source.Key, "cache")
		return nil, fmt.Errorf("cache set %s: %w", source.Key, err)
	}

	// The channel count is advisory: a failed config write leaves the new cache entry in place.
	if err := l.syncChannelNumber(ctx, source.Key, len(channels)); err != nil {
		metrics.RecordRefreshFailure(source.Key, "config")
		logger.Error("channel count update failed", "channels", len(channels), "error", err)
	}

	metrics.RecordRefresh(source.Key)
	logger.Info("playlist refreshed", "channels", len(channels), "duration", time.Since(start))

	return &Result{
		Source:     source.Ref(),
		Channels:   channels,
		Cached:     false,
		UpdateTime: entry.UpdateTime,
	}, nil
}

// syncChannelNumber records n as key's channel count under the store-wide lock,
// so it never interleaves with ReplaceSources. Stores with per-key updates are
// used directly; otherwise the list is re-read and replaced so concurrent
// refreshes of other keys are not lost.
func (l *LiveChannels) syncChannelNumber(ctx context.Context, key string, n int) error {
	unlock, err := l.locker.Lock(ctx)
	if err != nil {
		return fmt.Errorf("lock configs: %w", err)
	}
	defer unlock()

	if setter, ok := l.configs.(ChannelNumberSetter); ok {
		return setter.SetChannelNumber(ctx, key, n)
	}

	current, err := l.configs.GetLiveConfigs(ctx)
	if err != nil {
		return fmt.Errorf("GetLiveConfigs: %w", err)
	}
	sources := append([]models.LiveSource(nil), current...)
	found := false
	for i := range sources {
		if sources[i].Key == key {
			sources[i].ChannelNumber = n
			found = true
		}
	}
	if !found {
		// Removed while the fetch was running.
		return nil
	}
	if err := l.configs.SetLiveConfigs(ctx, sources); err != nil {
		return fmt.Errorf("SetLiveConfigs: %w", err)
	}
	return nil
}
