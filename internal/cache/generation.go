package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// setIfGenerationScript writes KEYS[2] only while KEYS[1] still holds ARGV[1].
// A missing generation key counts as "0".
var setIfGenerationScript = redis.NewScript(`
	local gen = redis.call("get", KEYS[1]) or "0"
	if gen ~= ARGV[1] then
		return 0
	end
	redis.call("set", KEYS[2], ARGV[2], "PX", ARGV[3])
	return 1
`)

// Generation returns the current value of a generation counter, "0" when unset.
func Generation(ctx context.Context, r *Redis, genKey string) (string, error) {
	gen, err := r.client.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("cache generation %s: %w", genKey, err)
	}
	return gen, nil
}

// BumpGeneration increments a generation counter so that pending SetIfGeneration calls
// that observed an older value become no-ops.
func BumpGeneration(ctx context.Context, r *Redis, genKey string) error {
	if err := r.client.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("cache bump generation %s: %w", genKey, err)
	}
	return nil
}

// SetIfGeneration JSON-marshals v and stores it under key only if genKey still holds gen.
// It reports whether the value was written.
func SetIfGeneration(ctx context.Context, r *Redis, genKey, gen, key string, v any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("cache marshal %s: %w", key, err)
	}
	n, err := setIfGenerationScript.Run(ctx, r.client, []string{genKey, key}, gen, data, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache set %s: %w", key, err)
	}
	return n == 1, nil
}
