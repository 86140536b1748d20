/**
 * PDF Diff API Server - Main Entry Point
 *
 * Serves the comparison HTTP API. Synchronous comparisons run in
 * process; asynchronous jobs are enqueued for the worker pool when
 * Redis is configured.
 */

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/veridoc/pdfdiff/internal/api"
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

	logger := logging.NewLogger("server").WithDebug(cfg.Debug)
	logger.Info("API server starting", "version", config.Version, "addr", cfg.HTTPAddr)

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

	// Initialize queue producer and result cache (optional)
	var producer *queue.Producer
	var results *queue.ResultCache
	if cfg.RedisURL != "" {
		producer, err = queue.NewProducer(cfg.RedisURL, cfg.QueueName)
		if err != nil {
			log.Fatalf("Failed to connect to Redis queue: %v", err)
		}
		defer producer.Close()

		results, err = queue.NewResultCache(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis result cache: %v", err)
		}
		defer results.Close()
		logger.Info("connected to Redis", "queue", cfg.QueueName)
	} else {
		logger.Warn("REDIS_URL not set, async jobs disabled")
	}

	// Initialize comparison processor for the synchronous endpoint
	proc, err := processor.NewCompareProcessor(cfg, store, logger)
	if err != nil {
		log.Fatalf("Failed to initialize processor: %v", err)
	}

	server := api.NewServer(cfg, proc, producer, results, store, logger)

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}

	logger.Info("API server stopped")
}
