/**
 * Redis result cache and job event channel.
 *
 * Finished reports are cached in Redis with a TTL so the API can serve
 * results without touching Postgres, and status transitions are
 * published on a pub/sub channel for interested subscribers.
 */

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resultKeyPrefix    = "pdfdiff:result:"
	statusKeyPrefix    = "pdfdiff:status:"
	eventsChannel      = "pdfdiff:events"
	defaultResultTTL   = 24 * time.Hour
	defaultStatusTTL   = 48 * time.Hour
)

// JobEvent is published on the events channel for each status change.
type JobEvent struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ResultCache caches finished reports and broadcasts job events.
type ResultCache struct {
	client    *redis.Client
	resultTTL time.Duration
}

// NewResultCache creates a result cache connected to the given Redis instance.
func NewResultCache(redisURL string) (*ResultCache, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &ResultCache{
		client:    client,
		resultTTL: defaultResultTTL,
	}, nil
}

// StoreResult caches a finished report under the job ID.
func (r *ResultCache) StoreResult(ctx context.Context, jobID string, result interface{}) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := r.client.Set(ctx, resultKeyPrefix+jobID, payload, r.resultTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache result for job %s: %w", jobID, err)
	}
	return nil
}

// GetResult fetches a cached report. Returns redis.Nil via the wrapped
// error when no result is cached.
func (r *ResultCache) GetResult(ctx context.Context, jobID string) (json.RawMessage, error) {
	payload, err := r.client.Get(ctx, resultKeyPrefix+jobID).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get result for job %s: %w", jobID, err)
	}
	return json.RawMessage(payload), nil
}

// PublishStatus records the latest status and publishes a job event.
func (r *ResultCache) PublishStatus(ctx context.Context, jobID, status, errMsg string) error {
	event := JobEvent{
		JobID:     jobID,
		Status:    status,
		Error:     errMsg,
		Timestamp: time.Now().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, statusKeyPrefix+jobID, status, defaultStatusTTL)
	pipe.Publish(ctx, eventsChannel, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish status for job %s: %w", jobID, err)
	}
	return nil
}

// GetStatus returns the last published status for a job, or "" when
// none is recorded.
func (r *ResultCache) GetStatus(ctx context.Context, jobID string) (string, error) {
	status, err := r.client.Get(ctx, statusKeyPrefix+jobID).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get status for job %s: %w", jobID, err)
	}
	return status, nil
}

// Subscribe returns a subscription to the job events channel. The
// caller owns the returned PubSub and must close it.
func (r *ResultCache) Subscribe(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, eventsChannel)
}

// Ping checks Redis connectivity.
func (r *ResultCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the Redis connection.
func (r *ResultCache) Close() error {
	return r.client.Close()
}
