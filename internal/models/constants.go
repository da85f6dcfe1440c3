package models

import "time"

// ChannelCacheTTL is how long a refreshed channel list stays fresh.
const ChannelCacheTTL = 30 * time.Minute

// Cache key prefixes for shared backends.
const (
	// PrefixChannels is the prefix for cached channel lists (live:channels:{sourceKey}).
	PrefixChannels = "live:channels:"

	// KeyLiveConfigs caches the full live source list.
	KeyLiveConfigs = "live:configs"

	// KeyLiveConfigsGen is bumped on every source list write; cached copies read before a bump are never stored.
	KeyLiveConfigsGen = "live:configs:gen"

	// KeyLiveConfigsLock guards read-modify-write of the live source list.
	KeyLiveConfigsLock = "live:configs:lock"
)

// ChannelsKey returns the cache key for the channel list of a source.
func ChannelsKey(sourceKey string) string {
	return PrefixChannels + sourceKey
}
