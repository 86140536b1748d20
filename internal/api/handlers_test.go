package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridoc/pdfdiff/internal/config"
	"github.com/veridoc/pdfdiff/internal/processor"
	"github.com/veridoc/pdfdiff/internal/storage"
)

// stubProcessor records the request it received and returns a canned
// result, so handler tests never touch OCR or the filesystem pipeline.
type stubProcessor struct {
	lastReq *processor.CompareRequest
	result  *processor.CompareResult
	err     error
}

func (s *stubProcessor) ProcessCompare(ctx context.Context, req *processor.CompareRequest) (*processor.CompareResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubProcessor) UpdateJobStatus(ctx context.Context, update *storage.JobUpdate) error {
	return nil
}

func newTestServer(t *testing.T, proc processor.CompareProcessorInterface) *Server {
	t.Helper()
	cfg := &config.Config{
		HTTPAddr:    ":0",
		MaxFileSize: 10 << 20,
		DefaultDPI:  300,
		TempDir:     t.TempDir(),
	}
	return NewServer(cfg, proc, nil, nil, nil, nil)
}

// multipartBody builds a multipart request body with the given files
// and form values.
func multipartBody(t *testing.T, files map[string]string, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, filename := range files {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 stub"))
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, config.Version, resp["version"])
}

func TestDiffRejectsMissingFile(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})
	body, contentType := multipartBody(t, map[string]string{"file_a": "a.pdf"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/diff", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file_b")
}

func TestDiffRejectsNonPDF(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})
	body, contentType := multipartBody(t,
		map[string]string{"file_a": "a.pdf", "file_b": "b.docx"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/diff", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "PDF")
}

func TestDiffRejectsInvalidDPI(t *testing.T) {
	for _, dpi := range []string{"20", "2000", "abc"} {
		srv := newTestServer(t, &stubProcessor{})
		body, contentType := multipartBody(t,
			map[string]string{"file_a": "a.pdf", "file_b": "b.pdf"},
			map[string]string{"dpi": dpi})
		req := httptest.NewRequest(http.MethodPost, "/v1/diff", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "dpi=%s", dpi)
	}
}

func TestDiffRunsComparison(t *testing.T) {
	stub := &stubProcessor{result: &processor.CompareResult{
		PDFAPath:    "a.pdf",
		PDFBPath:    "b.pdf",
		TotalPagesA: 1,
		TotalPagesB: 1,
		DiffItems:   []processor.DiffItem{},
	}}
	srv := newTestServer(t, stub)
	body, contentType := multipartBody(t,
		map[string]string{"file_a": "a.pdf", "file_b": "b.pdf"},
		map[string]string{"dpi": "150"})
	req := httptest.NewRequest(http.MethodPost, "/v1/diff", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "a.pdf", stub.lastReq.NameA)
	assert.Equal(t, "b.pdf", stub.lastReq.NameB)
	assert.Equal(t, 150, stub.lastReq.DPI)

	var result processor.CompareResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "a.pdf", result.PDFAPath)
}

func TestDiffJobWithoutQueue(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})
	body, contentType := multipartBody(t,
		map[string]string{"file_a": "a.pdf", "file_b": "b.pdf"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/diff/jobs", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetJobRejectsInvalidID(t *testing.T) {
	srv := newTestServer(t, &stubProcessor{})
	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
