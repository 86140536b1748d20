/**
 * HTTP handlers for the PDF diff API.
 *
 * POST /v1/diff runs a comparison synchronously and returns the full
 * report. POST /v1/diff/jobs enqueues the comparison for the worker
 * pool and returns a job ID. GET /v1/jobs/{id} reports job state and,
 * once finished, the report.
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/veridoc/pdfdiff/internal/config"
	comperrors "github.com/veridoc/pdfdiff/internal/errors"
	"github.com/veridoc/pdfdiff/internal/processor"
	"github.com/veridoc/pdfdiff/internal/queue"
	"github.com/veridoc/pdfdiff/internal/storage"
)

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: config.Version,
	})
}

// handleDiff runs a comparison synchronously.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	upload, status, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}
	defer upload.cleanup()

	result, err := s.processor.ProcessCompare(r.Context(), &processor.CompareRequest{
		PathA: upload.pathA,
		PathB: upload.pathB,
		NameA: upload.nameA,
		NameB: upload.nameB,
		DPI:   upload.dpi,
	})
	if err != nil {
		s.writeProcessingError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleDiffJob enqueues a comparison for asynchronous processing.
func (s *Server) handleDiffJob(w http.ResponseWriter, r *http.Request) {
	if s.producer == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("async processing is not configured"))
		return
	}

	upload, status, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, status, err)
		return
	}

	jobID := uuid.New().String()

	if s.store != nil {
		err := s.store.UpdateJobStatus(r.Context(), &storage.JobUpdate{
			JobID:    jobID,
			Status:   storage.StatusQueued,
			PDFAName: upload.nameA,
			PDFBName: upload.nameB,
			DPI:      upload.dpi,
		})
		if err != nil {
			upload.cleanup()
			s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to create job"))
			s.logger.Error("failed to create job record", "job_id", jobID, "error", err)
			return
		}
	}

	// The worker removes the temp files once the job finishes.
	_, err = s.producer.EnqueueCompare(r.Context(), &queue.ComparePayload{
		JobID:   jobID,
		PathA:   upload.pathA,
		PathB:   upload.pathB,
		NameA:   upload.nameA,
		NameB:   upload.nameB,
		DPI:     upload.dpi,
		Cleanup: true,
	})
	if err != nil {
		upload.cleanup()
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to enqueue job"))
		s.logger.Error("failed to enqueue job", "job_id", jobID, "error", err)
		return
	}

	s.logger.Info("job enqueued", "job_id", jobID, "pdf_a", upload.nameA, "pdf_b", upload.nameB)
	s.writeJSON(w, http.StatusAccepted, jobAccepted{
		JobID:  jobID,
		Status: storage.StatusQueued,
	})
}

// handleGetJob reports job state and the report once completed.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")
	if _, err := uuid.Parse(jobID); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid job ID"))
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, fmt.Errorf("job persistence is not configured"))
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("job not found"))
		return
	}

	resp := jobResponse{JobRecord: job}
	if job.Status == storage.StatusCompleted {
		if result := s.lookupResult(r.Context(), jobID); result != nil {
			resp.Result = result
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// lookupResult fetches a finished report, preferring the Redis cache
// over Postgres.
func (s *Server) lookupResult(ctx context.Context, jobID string) json.RawMessage {
	if s.results != nil {
		if result, err := s.results.GetResult(ctx, jobID); err == nil {
			return result
		}
	}
	if s.store != nil {
		if result, err := s.store.GetReport(ctx, jobID); err == nil {
			return result
		}
	}
	return nil
}

// upload holds the two PDFs of a comparison request, saved to temp files.
type upload struct {
	pathA, pathB string
	nameA, nameB string
	dpi          int
}

// cleanup removes the temp files.
func (u *upload) cleanup() {
	for _, path := range []string{u.pathA, u.pathB} {
		if path != "" {
			os.Remove(path)
		}
	}
}

// readUpload parses the multipart comparison request and stages both
// PDFs into the temp directory. The returned status is the HTTP status
// to send when err is non-nil.
func (s *Server) readUpload(r *http.Request) (*upload, int, error) {
	if err := r.ParseMultipartForm(s.maxFileSize); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid multipart request: file_a and file_b PDF files are required")
	}

	dpi := s.defaultDPI
	if raw := r.FormValue("dpi"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("dpi must be an integer")
		}
		dpi = parsed
	}
	if dpi < config.MinDPI || dpi > config.MaxDPI {
		return nil, http.StatusBadRequest,
			fmt.Errorf("dpi must be between %d and %d", config.MinDPI, config.MaxDPI)
	}

	u := &upload{dpi: dpi}

	var status int
	var err error
	u.pathA, u.nameA, status, err = s.saveFormPDF(r, "file_a")
	if err != nil {
		return nil, status, err
	}
	u.pathB, u.nameB, status, err = s.saveFormPDF(r, "file_b")
	if err != nil {
		u.cleanup()
		return nil, status, err
	}

	return u, 0, nil
}

// saveFormPDF stages one uploaded PDF into the temp directory.
func (s *Server) saveFormPDF(r *http.Request, field string) (path, name string, status int, err error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", "", http.StatusBadRequest, fmt.Errorf("%s is required", field)
	}
	defer file.Close()

	name = filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return "", "", http.StatusBadRequest, fmt.Errorf("%s must be a PDF file, got %q", field, name)
	}

	path, err = s.stageFile(file, field)
	if err != nil {
		return "", "", http.StatusInternalServerError, fmt.Errorf("failed to store upload")
	}
	return path, name, 0, nil
}

// stageFile copies an uploaded file to a temp file and returns its path.
func (s *Server) stageFile(src multipart.File, field string) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "pdfdiff-"+field+"-*.pdf")
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// writeProcessingError maps processor failures to HTTP responses.
// Internal detail is only exposed in debug mode.
func (s *Server) writeProcessingError(w http.ResponseWriter, err error) {
	var compErr *comperrors.ComparisonError
	if errors.As(err, &compErr) {
		status := http.StatusInternalServerError
		switch compErr.Code {
		case comperrors.ErrorInvalidResolution, comperrors.ErrorUnsupportedFormat:
			status = http.StatusBadRequest
		case comperrors.ErrorProcessingTimeout:
			status = http.StatusGatewayTimeout
		}
		resp := errorResponse{Error: compErr.Message, Code: string(compErr.Code)}
		if s.debug && compErr.Cause != nil {
			resp.Detail = compErr.Cause.Error()
		}
		s.writeJSON(w, status, resp)
		return
	}

	s.logger.Error("comparison failed", "error", err)
	resp := errorResponse{Error: "comparison failed"}
	if s.debug {
		resp.Detail = err.Error()
	}
	s.writeJSON(w, http.StatusInternalServerError, resp)
}

// writeError writes a JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON writes a JSON response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
