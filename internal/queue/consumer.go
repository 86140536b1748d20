/**
 * Job consumer for the PDF diff worker.
 *
 * Runs an asynq worker pool over the comparison queue. Each task is
 * validated, processed under a per-job timeout, and its status is
 * written back to Postgres and the Redis result cache.
 */

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hibiken/asynq"

	comperrors "github.com/veridoc/pdfdiff/internal/errors"
	"github.com/veridoc/pdfdiff/internal/logging"
	"github.com/veridoc/pdfdiff/internal/processor"
	"github.com/veridoc/pdfdiff/internal/storage"
)

// ConsumerConfig holds consumer configuration.
type ConsumerConfig struct {
	RedisURL          string
	QueueName         string
	Concurrency       int
	ProcessingTimeout time.Duration
}

// Consumer consumes comparison jobs from the queue.
type Consumer struct {
	cfg       ConsumerConfig
	server    *asynq.Server
	processor processor.CompareProcessorInterface
	results   *ResultCache // nil when the result cache is disabled
	logger    *logging.Logger
}

// NewConsumer creates a consumer backed by an asynq worker pool.
func NewConsumer(cfg ConsumerConfig, proc processor.CompareProcessorInterface, results *ResultCache, logger *logging.Logger) (*Consumer, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	if proc == nil {
		return nil, fmt.Errorf("processor is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.QueueName == "" {
		cfg.QueueName = "default"
	}
	if logger == nil {
		logger = logging.NewLogger("queue")
	}

	opt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	c := &Consumer{
		cfg:       cfg,
		processor: proc,
		results:   results,
		logger:    logger,
	}

	c.server = asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			cfg.QueueName: 1,
		},
		RetryDelayFunc: retryDelay,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("task failed", "type", task.Type(), "error", err)
		}),
	})

	return c, nil
}

// retryDelay backs off exponentially from 5s, capped at 60s.
func retryDelay(n int, err error, task *asynq.Task) time.Duration {
	delay := 5 * time.Second << uint(n)
	if delay > 60*time.Second {
		delay = 60 * time.Second
	}
	return delay
}

// Run starts the worker pool and blocks until Shutdown is called.
func (c *Consumer) Run() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeComparePDFs, c.handleCompare)

	c.logger.Info("worker pool starting",
		"queue", c.cfg.QueueName,
		"concurrency", c.cfg.Concurrency)

	return c.server.Run(mux)
}

// Shutdown stops the worker pool, waiting for in-flight tasks.
func (c *Consumer) Shutdown() {
	c.server.Shutdown()
}

// handleCompare processes one comparison task.
func (c *Consumer) handleCompare(ctx context.Context, task *asynq.Task) error {
	var payload ComparePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload will never succeed; skip retries.
		return fmt.Errorf("invalid task payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.JobID == "" || payload.PathA == "" || payload.PathB == "" {
		return fmt.Errorf("task payload missing required fields: %w", asynq.SkipRetry)
	}

	start := time.Now()
	c.logger.Info("processing job", "job_id", payload.JobID, "pdf_a", payload.NameA, "pdf_b", payload.NameB)

	c.setStatus(ctx, &payload, storage.StatusProcessing, 0, nil)

	jobCtx := ctx
	if c.cfg.ProcessingTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, c.cfg.ProcessingTimeout)
		defer cancel()
	}

	result, err := c.processor.ProcessCompare(jobCtx, &processor.CompareRequest{
		JobID: payload.JobID,
		PathA: payload.PathA,
		PathB: payload.PathB,
		NameA: payload.NameA,
		NameB: payload.NameB,
		DPI:   payload.DPI,
	})

	if payload.Cleanup {
		c.removeInputs(&payload)
	}

	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		if errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			err = comperrors.NewProcessingTimeoutError(payload.JobID, c.cfg.ProcessingTimeout, err)
		}
		c.logger.Error("job failed", "job_id", payload.JobID, "elapsed_ms", elapsed, "error", err)
		c.setStatus(ctx, &payload, storage.StatusFailed, elapsed, err)
		return err
	}

	if c.results != nil {
		if cacheErr := c.results.StoreResult(ctx, payload.JobID, result); cacheErr != nil {
			c.logger.Warn("failed to cache result", "job_id", payload.JobID, "error", cacheErr)
		}
	}

	c.logger.Info("job completed",
		"job_id", payload.JobID,
		"differences", result.TotalDifferences,
		"elapsed_ms", elapsed)
	c.setStatus(ctx, &payload, storage.StatusCompleted, elapsed, nil)

	return nil
}

// setStatus records a status transition in Postgres and publishes it
// to the Redis event channel. Failures are logged, not fatal; the job
// outcome is decided by the processor.
func (c *Consumer) setStatus(ctx context.Context, payload *ComparePayload, status string, elapsedMs int64, jobErr error) {
	update := &storage.JobUpdate{
		JobID:            payload.JobID,
		Status:           status,
		PDFAName:         payload.NameA,
		PDFBName:         payload.NameB,
		DPI:              payload.DPI,
		ProcessingTimeMs: elapsedMs,
	}
	var compErr *comperrors.ComparisonError
	if jobErr != nil {
		update.ErrorMessage = jobErr.Error()
		if errors.As(jobErr, &compErr) {
			update.ErrorCode = string(compErr.Code)
		}
	}

	if err := c.processor.UpdateJobStatus(ctx, update); err != nil {
		c.logger.Warn("failed to persist job status", "job_id", payload.JobID, "status", status, "error", err)
	}
	if c.results != nil {
		if err := c.results.PublishStatus(ctx, payload.JobID, status, update.ErrorMessage); err != nil {
			c.logger.Warn("failed to publish job status", "job_id", payload.JobID, "status", status, "error", err)
		}
	}
}

// removeInputs deletes uploaded temp files after processing.
func (c *Consumer) removeInputs(payload *ComparePayload) {
	for _, path := range []string{payload.PathA, payload.PathB} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}
}
