/**
 * Configuration for the PDF diff service.
 *
 * Loads configuration from environment variables; a .env file is
 * applied by the entrypoints before this runs.
 */

package config

import (
	"fmt"
	"os"
	"strconv"
)

// Version is the service version reported by the health endpoint.
const Version = "0.1.0"

// Rendering resolution bounds accepted from callers.
const (
	MinDPI = 72
	MaxDPI = 600
)

// Config holds service configuration shared by the API server, the
// worker and the CLI.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Redis (queue + result cache); empty disables async jobs
	RedisURL string

	// PostgreSQL (job/report persistence); empty disables persistence
	DatabaseURL string

	// Worker configuration
	WorkerConcurrency int
	ProcessingTimeout int // milliseconds
	QueueName         string

	// Upload limits
	MaxFileSize int64

	// Ingestion
	TempDir      string
	PdftoppmPath string
	OCRLanguage  string
	DefaultDPI   int

	// Debug exposes failure detail in API responses
	Debug bool
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTPAddr:          getEnvOrDefault("HTTP_ADDR", ":8000"),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
		DatabaseURL:       getEnvOrDefault("DATABASE_URL", ""),
		WorkerConcurrency: getEnvAsIntOrDefault("WORKER_CONCURRENCY", 4),
		ProcessingTimeout: getEnvAsIntOrDefault("PROCESSING_TIMEOUT", 300000), // 5 minutes
		QueueName:         getEnvOrDefault("QUEUE_NAME", "pdfdiff:jobs"),
		MaxFileSize:       getEnvAsInt64OrDefault("MAX_FILE_SIZE", 52428800), // 50MB
		TempDir:           getEnvOrDefault("TEMP_DIR", os.TempDir()),
		PdftoppmPath:      getEnvOrDefault("PDFTOPPM_PATH", "pdftoppm"),
		OCRLanguage:       getEnvOrDefault("OCR_LANGUAGE", "eng"),
		DefaultDPI:        getEnvAsIntOrDefault("DEFAULT_DPI", 300),
		Debug:             getEnvOrDefault("DEBUG", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if configuration is valid.
func (c *Config) Validate() error {
	if c.WorkerConcurrency < 1 || c.WorkerConcurrency > 100 {
		return fmt.Errorf("WORKER_CONCURRENCY must be between 1 and 100, got %d", c.WorkerConcurrency)
	}
	if c.MaxFileSize < 1024 || c.MaxFileSize > 1073741824 { // 1KB to 1GB
		return fmt.Errorf("MAX_FILE_SIZE must be between 1KB and 1GB, got %d", c.MaxFileSize)
	}
	if c.DefaultDPI < MinDPI || c.DefaultDPI > MaxDPI {
		return fmt.Errorf("DEFAULT_DPI must be between %d and %d, got %d", MinDPI, MaxDPI, c.DefaultDPI)
	}
	if c.ProcessingTimeout < 1000 {
		return fmt.Errorf("PROCESSING_TIMEOUT must be at least 1000ms, got %d", c.ProcessingTimeout)
	}
	return nil
}

// getEnvOrDefault gets an environment variable or returns the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets an environment variable as int or returns the default.
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsInt64OrDefault gets an environment variable as int64 or returns the default.
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
