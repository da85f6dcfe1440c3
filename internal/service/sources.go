package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/voyagen/livechannels/internal/models"
)

// ListSources returns the live source list in store order.
func (l *LiveChannels) ListSources(ctx context.Context) ([]models.LiveSource, error) {
	sources, err := l.configs.GetLiveConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetLiveConfigs: %w", err)
	}
	if sources == nil {
		sources = []models.LiveSource{}
	}
	return sources, nil
}

// ReplaceSources validates sources and writes them as the new list.
// The write holds the store-wide lock, which channel count updates also take, so the two never interleave.
func (l *LiveChannels) ReplaceSources(ctx context.Context, sources []models.LiveSource) error {
	if err := ValidateSources(sources); err != nil {
		return err
	}
	unlock, err := l.locker.Lock(ctx)
	if err != nil {
		return fmt.Errorf("lock configs: %w", err)
	}
	defer unlock()

	if err := l.configs.SetLiveConfigs(ctx, sources); err != nil {
		return fmt.Errorf("SetLiveConfigs: %w", err)
	}
	l.logger.Info("live sources replaced", "count", len(sources))
	return nil
}

// ValidateSources checks key presence and uniqueness and that every URL is http(s).
// Names default to the key.
func ValidateSources(sources []models.LiveSource) error {
	seen := make(map[string]struct{}, len(sources))
	for i := range sources {
		s := &sources[i]
		s.Key = strings.TrimSpace(s.Key)
		if s.Key == "" {
			return invalidf("source %d: key is required", i)
		}
		if _, dup := seen[s.Key]; dup {
			return invalidf("source %q: duplicate key", s.Key)
		}
		seen[s.Key] = struct{}{}
		if u, err := url.ParseRequestURI(s.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return invalidf("source %q: url must be a valid http or https URL", s.Key)
		}
		if s.Name == "" {
			s.Name = s.Key
		}
	}
	return nil
}
