package models

import "time"

// CachedChannels is the cached result of one playlist refresh.
// Timestamps are unix milliseconds; ExpireTime is always UpdateTime plus the cache TTL.
type CachedChannels struct {
	Channels   []Channel `json:"channels"`
	UpdateTime int64     `json:"updateTime"`
	ExpireTime int64     `json:"expireTime"`
}

// NewCachedChannels stamps channels with now and now+ttl.
func NewCachedChannels(channels []Channel, now time.Time, ttl time.Duration) *CachedChannels {
	updated := now.UnixMilli()
	return &CachedChannels{
		Channels:   channels,
		UpdateTime: updated,
		ExpireTime: updated + ttl.Milliseconds(),
	}
}

// IsFresh reports whether c can be served at now without a refresh.
func (c *CachedChannels) IsFresh(now time.Time) bool {
	return c != nil && c.ExpireTime > now.UnixMilli()
}
