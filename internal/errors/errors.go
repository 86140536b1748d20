package errors

import (
	"fmt"
	"time"
)

/**
 * Structured error types for comparison jobs.
 *
 * Input validation failures never reach the engine; ingestion and
 * storage failures surface through these codes so the API can report a
 * generic processing error while the job record keeps the detail.
 */

// ErrorCode enum for structured error handling.
type ErrorCode string

const (
	// Validation errors (rejected before the engine runs)
	ErrorInvalidResolution ErrorCode = "INVALID_RESOLUTION"
	ErrorUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"

	// Ingestion errors
	ErrorIngestionFailed ErrorCode = "INGESTION_FAILED"
	ErrorOCRFailed       ErrorCode = "OCR_FAILED"

	// Infrastructure errors
	ErrorStorageFailed     ErrorCode = "STORAGE_FAILED"
	ErrorProcessingTimeout ErrorCode = "PROCESSING_TIMEOUT"
)

// ComparisonError represents a structured comparison job error.
type ComparisonError struct {
	Code      ErrorCode
	Message   string
	JobID     string
	Timestamp time.Time
	Details   map[string]interface{}
	Cause     error
}

func (e *ComparisonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ComparisonError) Unwrap() error {
	return e.Cause
}

// Factory functions for common errors

func NewInvalidResolutionError(jobID string, dpi, minDPI, maxDPI int) *ComparisonError {
	return &ComparisonError{
		Code:      ErrorInvalidResolution,
		Message:   fmt.Sprintf("DPI must be between %d and %d, got %d", minDPI, maxDPI, dpi),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"dpi": dpi,
		},
	}
}

func NewUnsupportedFormatError(jobID string, filename string) *ComparisonError {
	return &ComparisonError{
		Code:      ErrorUnsupportedFormat,
		Message:   fmt.Sprintf("Unsupported file type: %s (only PDF files are allowed)", filename),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"filename": filename,
		},
	}
}

func NewIngestionFailedError(jobID string, path string, cause error) *ComparisonError {
	return &ComparisonError{
		Code:      ErrorIngestionFailed,
		Message:   fmt.Sprintf("Failed to ingest document: %s", path),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"path": path,
		},
		Cause: cause,
	}
}

func NewStorageFailedError(jobID string, cause error) *ComparisonError {
	return &ComparisonError{
		Code:      ErrorStorageFailed,
		Message:   "Failed to store comparison results",
		JobID:     jobID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

func NewProcessingTimeoutError(jobID string, duration time.Duration, cause error) *ComparisonError {
	return &ComparisonError{
		Code:      ErrorProcessingTimeout,
		Message:   fmt.Sprintf("Comparison timed out after %v", duration),
		JobID:     jobID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"timeout_duration": duration.String(),
		},
		Cause: cause,
	}
}

// ToMap converts the error to a map for job metadata storage.
func (e *ComparisonError) ToMap() map[string]interface{} {
	result := map[string]interface{}{
		"error_code": string(e.Code),
		"message":    e.Message,
		"timestamp":  e.Timestamp,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	if e.Cause != nil {
		result["cause"] = e.Cause.Error()
	}
	return result
}
