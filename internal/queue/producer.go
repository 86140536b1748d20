/**
 * Job producer for the PDF diff queue.
 *
 * Enqueues comparison tasks onto asynq so the worker pool can pick
 * them up. The API server and the CLI both use this producer.
 */

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypeComparePDFs is the asynq task type for PDF comparisons.
const TaskTypeComparePDFs = "compare:pdfs"

// ComparePayload is the serialized body of a comparison task.
type ComparePayload struct {
	JobID    string `json:"job_id"`
	PathA    string `json:"path_a"`
	PathB    string `json:"path_b"`
	NameA    string `json:"name_a"`
	NameB    string `json:"name_b"`
	DPI      int    `json:"dpi"`
	Cleanup  bool   `json:"cleanup"`
	Enqueued int64  `json:"enqueued"`
}

// Producer enqueues comparison jobs.
type Producer struct {
	client *asynq.Client
	queue  string
}

// NewProducer creates a producer connected to the given Redis instance.
func NewProducer(redisURL, queueName string) (*Producer, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if queueName == "" {
		queueName = "default"
	}
	return &Producer{
		client: asynq.NewClient(opt),
		queue:  queueName,
	}, nil
}

// EnqueueCompare enqueues a comparison job and returns the task ID.
func (p *Producer) EnqueueCompare(ctx context.Context, payload *ComparePayload) (string, error) {
	if payload.JobID == "" {
		return "", fmt.Errorf("job ID is required")
	}
	payload.Enqueued = time.Now().Unix()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeComparePDFs, body)
	info, err := p.client.EnqueueContext(ctx, task,
		asynq.Queue(p.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Retention(24*time.Hour),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue comparison job %s: %w", payload.JobID, err)
	}

	return info.ID, nil
}

// Close releases the underlying Redis connection.
func (p *Producer) Close() error {
	return p.client.Close()
}
