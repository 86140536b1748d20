/**
 * Comparison processor for the PDF diff worker.
 *
 * Orchestrates a full comparison: validate both inputs, ingest them
 * through rasterization and OCR, run the page-aware diff, and persist
 * the report when a store is configured.
 */

package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veridoc/pdfdiff/internal/config"
	"github.com/veridoc/pdfdiff/internal/diff"
	comperrors "github.com/veridoc/pdfdiff/internal/errors"
	"github.com/veridoc/pdfdiff/internal/ingest"
	"github.com/veridoc/pdfdiff/internal/logging"
	"github.com/veridoc/pdfdiff/internal/storage"
)

// CompareProcessorInterface defines the interface for comparison processing
type CompareProcessorInterface interface {
	ProcessCompare(ctx context.Context, req *CompareRequest) (*CompareResult, error)
	UpdateJobStatus(ctx context.Context, update *storage.JobUpdate) error
}

// CompareRequest represents a comparison request
type CompareRequest struct {
	JobID string
	PathA string
	PathB string
	NameA string
	NameB string
	DPI   int
}

// CompareProcessor runs PDF comparisons.
type CompareProcessor struct {
	cfg    *config.Config
	store  *storage.PostgresClient // nil when persistence is disabled
	logger *logging.Logger
}

// NewCompareProcessor creates a comparison processor. The store may be
// nil; results are then only returned to the caller.
func NewCompareProcessor(cfg *config.Config, store *storage.PostgresClient, logger *logging.Logger) (*CompareProcessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.NewLogger("processor")
	}
	return &CompareProcessor{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}, nil
}

// ProcessCompare runs a full comparison for the given request.
func (p *CompareProcessor) ProcessCompare(ctx context.Context, req *CompareRequest) (*CompareResult, error) {
	start := time.Now()

	dpi := req.DPI
	if dpi == 0 {
		dpi = p.cfg.DefaultDPI
	}
	if dpi < config.MinDPI || dpi > config.MaxDPI {
		return nil, comperrors.NewInvalidResolutionError(req.JobID, dpi, config.MinDPI, config.MaxDPI)
	}

	nameA := req.NameA
	if nameA == "" {
		nameA = req.PathA
	}
	nameB := req.NameB
	if nameB == "" {
		nameB = req.PathB
	}

	p.logger.Info("starting comparison", "job_id", req.JobID, "pdf_a", nameA, "pdf_b", nameB, "dpi", dpi)

	opts := ingest.DefaultOptions()
	opts.DPI = dpi
	opts.Language = p.cfg.OCRLanguage
	opts.PdftoppmPath = p.cfg.PdftoppmPath
	opts.TempDir = p.cfg.TempDir
	ingestor := ingest.NewIngestor(opts, p.logger)

	pagesA, err := ingestor.ProcessPDF(ctx, req.PathA)
	if err != nil {
		return nil, comperrors.NewIngestionFailedError(req.JobID, nameA, err)
	}
	pagesB, err := ingestor.ProcessPDF(ctx, req.PathB)
	if err != nil {
		return nil, comperrors.NewIngestionFailedError(req.JobID, nameB, err)
	}

	report := diff.CompareDocuments(pagesA, pagesB, nameA, nameB, diff.DefaultGroupConfig())
	result := BuildResult(report)

	elapsed := time.Since(start).Milliseconds()
	p.logger.Info("comparison finished",
		"job_id", req.JobID,
		"pages_a", result.TotalPagesA,
		"pages_b", result.TotalPagesB,
		"differences", result.TotalDifferences,
		"elapsed_ms", elapsed)

	if p.store != nil && req.JobID != "" {
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		if err := p.store.StoreReport(ctx, req.JobID, payload); err != nil {
			return nil, comperrors.NewStorageFailedError(req.JobID, err)
		}
	}

	return result, nil
}

// UpdateJobStatus persists a job status change when a store is configured.
func (p *CompareProcessor) UpdateJobStatus(ctx context.Context, update *storage.JobUpdate) error {
	if p.store == nil {
		return nil
	}
	return p.store.UpdateJobStatus(ctx, update)
}
