package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshJob asks a worker to refresh the channel list of one source.
type RefreshJob struct {
	SourceKey   string    `json:"source_key"`
	RequestedAt time.Time `json:"requested_at"`
}

// DefaultQueue is the Redis list key used for the refresh job queue.
const DefaultQueue = "livechannels:jobs:refresh"

// Enqueue pushes a job onto the left side of a Redis list.
func Enqueue(ctx context.Context, r *Redis, queue string, job RefreshJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue marshal: %w", err)
	}
	if err := r.client.LPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("queue push: %w", err)
	}
	return nil
}

// Dequeue blocks until a job is available on the right side of the list
// or the timeout expires. When the timeout elapses without a job,
// (nil, nil) is returned so the caller can loop and check for shutdown.
func Dequeue(ctx context.Context, r *Redis, queue string, timeout time.Duration) (*RefreshJob, error) {
	result, err := r.client.BRPop(ctx, timeout, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// Context cancelled on shutdown.
		if ctx.Err() != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("queue dequeue: %w", err)
	}
	// BRPop returns [key, value].
	if len(result) < 2 {
		return nil, nil
	}
	var job RefreshJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("queue unmarshal: %w", err)
	}
	return &job, nil
}

// RefreshQueue pushes refresh jobs onto one named queue.
type RefreshQueue struct {
	r    *Redis
	name string
}

// NewRefreshQueue returns a RefreshQueue for the list key name.
func NewRefreshQueue(r *Redis, name string) *RefreshQueue {
	return &RefreshQueue{r: r, name: name}
}

// EnqueueRefresh queues a refresh of sourceKey.
func (q *RefreshQueue) EnqueueRefresh(ctx context.Context, sourceKey string) error {
	return Enqueue(ctx, q.r, q.name, RefreshJob{SourceKey: sourceKey, RequestedAt: time.Now().UTC()})
}

// Next waits up to timeout for the next job. It returns (nil, nil) on timeout or shutdown.
func (q *RefreshQueue) Next(ctx context.Context, timeout time.Duration) (*RefreshJob, error) {
	return Dequeue(ctx, q.r, q.name, timeout)
}
