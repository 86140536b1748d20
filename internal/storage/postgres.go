/**
 * PostgreSQL client for the PDF diff worker.
 *
 * Handles persistence of comparison jobs and finished reports. Reports
 * are stored as JSONB so the API can serve them without re-assembly.
 */

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Job status values persisted in comparison_jobs.status.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// PostgresClient handles database operations
type PostgresClient struct {
	db *sql.DB
}

// JobUpdate represents a job status update
type JobUpdate struct {
	JobID            string
	Status           string
	PDFAName         string
	PDFBName         string
	DPI              int
	ProcessingTimeMs int64
	ErrorCode        string
	ErrorMessage     string
}

// JobRecord is a persisted comparison job row.
type JobRecord struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"`
	PDFAName         string     `json:"pdf_a_name,omitempty"`
	PDFBName         string     `json:"pdf_b_name,omitempty"`
	DPI              int        `json:"dpi,omitempty"`
	ProcessingTimeMs int64      `json:"processing_time_ms,omitempty"`
	ErrorCode        string     `json:"error_code,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// NewPostgresClient creates a new PostgreSQL client
func NewPostgresClient(databaseURL string) (*PostgresClient, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{db: db}, nil
}

// UpdateJobStatus upserts a comparison job row. The upsert lets the
// worker create the row when the API did not persist it first, which
// happens when jobs are enqueued by the CLI directly.
func (p *PostgresClient) UpdateJobStatus(ctx context.Context, update *JobUpdate) error {
	if update.JobID == "" {
		return fmt.Errorf("job ID is required")
	}
	if update.Status == "" {
		return fmt.Errorf("status is required")
	}

	query := `
		INSERT INTO pdfdiff.comparison_jobs (
			id, status, pdf_a_name, pdf_b_name, dpi,
			processing_time_ms, error_code, error_message,
			created_at, updated_at, completed_at
		) VALUES (
			$1::uuid, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, 0),
			NULLIF($6, 0), NULLIF($7, ''), NULLIF($8, ''),
			NOW(), NOW(),
			CASE WHEN $2 IN ('completed', 'failed') THEN NOW() ELSE NULL END
		)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			pdf_a_name = COALESCE(EXCLUDED.pdf_a_name, pdfdiff.comparison_jobs.pdf_a_name),
			pdf_b_name = COALESCE(EXCLUDED.pdf_b_name, pdfdiff.comparison_jobs.pdf_b_name),
			dpi = COALESCE(EXCLUDED.dpi, pdfdiff.comparison_jobs.dpi),
			processing_time_ms = COALESCE(EXCLUDED.processing_time_ms, pdfdiff.comparison_jobs.processing_time_ms),
			error_code = NULLIF(EXCLUDED.error_code, ''),
			error_message = NULLIF(EXCLUDED.error_message, ''),
			completed_at = COALESCE(EXCLUDED.completed_at, pdfdiff.comparison_jobs.completed_at),
			updated_at = NOW()
		RETURNING id
	`

	var returnedID string
	err := p.db.QueryRowContext(
		ctx,
		query,
		update.JobID,
		update.Status,
		update.PDFAName,
		update.PDFBName,
		update.DPI,
		update.ProcessingTimeMs,
		update.ErrorCode,
		update.ErrorMessage,
	).Scan(&returnedID)

	if err != nil {
		return fmt.Errorf("failed to update job status (job=%s, status=%s): %w",
			update.JobID, update.Status, err)
	}

	return nil
}

// StoreReport stores a finished comparison report as JSONB.
func (p *PostgresClient) StoreReport(ctx context.Context, jobID string, report json.RawMessage) error {
	if jobID == "" {
		return fmt.Errorf("job ID is required")
	}
	if len(report) == 0 {
		return fmt.Errorf("report is required")
	}

	query := `
		INSERT INTO pdfdiff.comparison_reports (job_id, report, created_at)
		VALUES ($1::uuid, $2::jsonb, NOW())
		ON CONFLICT (job_id) DO UPDATE SET
			report = EXCLUDED.report,
			created_at = NOW()
	`

	if _, err := p.db.ExecContext(ctx, query, jobID, []byte(report)); err != nil {
		return fmt.Errorf("failed to store report for job %s: %w", jobID, err)
	}

	return nil
}

// GetReport retrieves a stored comparison report by job ID.
func (p *PostgresClient) GetReport(ctx context.Context, jobID string) (json.RawMessage, error) {
	if jobID == "" {
		return nil, fmt.Errorf("job ID is required")
	}

	query := `SELECT report FROM pdfdiff.comparison_reports WHERE job_id = $1::uuid`

	var report []byte
	err := p.db.QueryRowContext(ctx, query, jobID).Scan(&report)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found: %s", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return json.RawMessage(report), nil
}

// GetJobByID retrieves a job by ID
func (p *PostgresClient) GetJobByID(ctx context.Context, jobID string) (*JobRecord, error) {
	if jobID == "" {
		return nil, fmt.Errorf("job ID is required")
	}

	query := `
		SELECT
			id, status, pdf_a_name, pdf_b_name, dpi,
			processing_time_ms, error_code, error_message,
			created_at, updated_at, completed_at
		FROM pdfdiff.comparison_jobs
		WHERE id = $1::uuid
	`

	var (
		job              JobRecord
		pdfAName         sql.NullString
		pdfBName         sql.NullString
		dpi              sql.NullInt64
		processingTimeMs sql.NullInt64
		errorCode        sql.NullString
		errorMessage     sql.NullString
		completedAt      sql.NullTime
	)

	err := p.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID, &job.Status, &pdfAName, &pdfBName, &dpi,
		&processingTimeMs, &errorCode, &errorMessage,
		&job.CreatedAt, &job.UpdatedAt, &completedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.PDFAName = pdfAName.String
	job.PDFBName = pdfBName.String
	job.DPI = int(dpi.Int64)
	job.ProcessingTimeMs = processingTimeMs.Int64
	job.ErrorCode = errorCode.String
	job.ErrorMessage = errorMessage.String
	if completedAt.Valid {
		t := completedAt.Time
		job.CompletedAt = &t
	}

	return &job, nil
}

// Ping checks database connectivity
func (p *PostgresClient) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection
func (p *PostgresClient) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// GetStats returns connection pool statistics
func (p *PostgresClient) GetStats() sql.DBStats {
	return p.db.Stats()
}
