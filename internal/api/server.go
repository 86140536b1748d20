/**
 * HTTP server for the PDF diff API.
 */

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/veridoc/pdfdiff/internal/config"
	"github.com/veridoc/pdfdiff/internal/logging"
	"github.com/veridoc/pdfdiff/internal/processor"
	"github.com/veridoc/pdfdiff/internal/queue"
	"github.com/veridoc/pdfdiff/internal/storage"
)

// Server serves the comparison API.
type Server struct {
	processor processor.CompareProcessorInterface
	producer  *queue.Producer          // nil disables async jobs
	results   *queue.ResultCache       // nil disables the result cache
	store     *storage.PostgresClient  // nil disables persistence
	logger    *logging.Logger

	httpServer  *http.Server
	maxFileSize int64
	defaultDPI  int
	tempDir     string
	debug       bool
}

// NewServer creates an API server. Producer, results and store are
// optional; the sync endpoint works with only a processor.
func NewServer(cfg *config.Config, proc processor.CompareProcessorInterface, producer *queue.Producer, results *queue.ResultCache, store *storage.PostgresClient, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogger("api")
	}
	s := &Server{
		processor:   proc,
		producer:    producer,
		results:     results,
		store:       store,
		logger:      logger,
		maxFileSize: cfg.MaxFileSize,
		defaultDPI:  cfg.DefaultDPI,
		tempDir:     cfg.TempDir,
		debug:       cfg.Debug,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.Routes(),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
	return s
}

// Routes builds the request mux. Exposed for tests.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /v1/diff", s.handleDiff)
	mux.HandleFunc("POST /v1/diff/jobs", s.handleDiffJob)
	mux.HandleFunc("GET /v1/jobs/{id}", s.handleGetJob)
	return s.logRequests(mux)
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds())
	})
}

// ListenAndServe starts the HTTP server and blocks.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
