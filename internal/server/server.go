// Package server exposes statement upload and spending analysis over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fjacquet/finflow/internal/logging"
	"fjacquet/finflow/internal/models"

	"github.com/gorilla/mux"
)

// HealthMessage is returned by GET /.
const HealthMessage = "Finance.AI Backend Online"

// API is the use-case surface served over HTTP.
type API interface {
	Ingest(ctx context.Context, userID string, r io.Reader) (models.UploadResponse, error)
	Analyze(ctx context.Context, req models.PredictRequest) (models.PredictResponse, error)
}

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	MaxUploadBytes int64
}

const (
	defaultAddr           = ":8000"
	defaultMaxUploadBytes = 20 << 20
	shutdownTimeout       = 10 * time.Second
)

// Server routes HTTP requests to an API.
type Server struct {
	api    API
	opts   Options
	router *mux.Router
	logger logging.Logger
}

// New creates a Server and registers its routes.
func New(api API, opts Options, logger logging.Logger) *Server {
	if opts.Addr == "" {
		opts.Addr = defaultAddr
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	s := &Server{api: api, opts: opts, router: mux.NewRouter(), logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.recoverPanics, s.requestID, s.cors)

	s.router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost, http.MethodOptions)
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logging.F("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		return nil
	}
}
