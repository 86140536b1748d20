/**
 * PDF Diff Worker - Main Entry Point
 *
 * Consumes comparison jobs from the Redis-backed queue, runs the
 * rasterize/OCR/diff pipeline and persists reports to PostgreSQL.
 */

package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/veridoc/pdfdiff/internal/config"
	"github.com/veridoc/pdfdiff/internal/logging"
	"github.com/veridoc/pdfdiff/internal/processor"
	"github.com/veridoc/pdfdiff/internal/queue"
	"github.com/veridoc/pdfdiff/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger("worker").WithDebug(cfg.Debug)
	logger.Info("worker starting",
		"version", config.Version,
		"queue", cfg.QueueName,
		"concurrency", cfg.WorkerConcurrency)

	if cfg.RedisURL == "" {
		log.Fatalf("REDIS_URL is required for the worker")
	}

	// Initialize PostgreSQL persistence (optional)
	var store *storage.PostgresClient
	if cfg.DatabaseURL != "" {
		store, err = storage.NewPostgresClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer store.Close()
		logger.Info("connected to PostgreSQL")
	} else {
		logger.Warn("DATABASE_URL not set, job persistence disabled")
	}

	// Initialize comparison processor
	proc, err := processor.NewCompareProcessor(cfg, store, logger)
	if err != nil {
		log.Fatalf("Failed to initialize processor: %v", err)
	}

	// Initialize result cache
	results, err := queue.NewResultCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis result cache: %v", err)
	}
	defer results.Close()

	// Initialize queue consumer
	consumer, err := queue.NewConsumer(queue.ConsumerConfig{
		RedisURL:          cfg.RedisURL,
		QueueName:         cfg.QueueName,
		Concurrency:       cfg.WorkerConcurrency,
		ProcessingTimeout: time.Duration(cfg.ProcessingTimeout) * time.Millisecond,
	}, proc, results, logger)
	if err != nil {
		log.Fatalf("Failed to initialize queue consumer: %v", err)
	}

	// Run blocks until SIGTERM/SIGINT; asynq handles signal shutdown.
	if err := consumer.Run(); err != nil {
		log.Fatalf("Worker stopped with error: %v", err)
	}

	logger.Info("worker stopped")
}
