// Package httpapi exposes the router and the RAG pipeline as a JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/zainraz03/agentic-assistant/internal/core/domain"
	"github.com/zainraz03/agentic-assistant/internal/core/ports/driving"
	"github.com/zainraz03/agentic-assistant/internal/logger"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var log = logger.With("http")

// Ports aggregates the driving ports the API serves.
type Ports struct {
	Router    driving.Router
	Retriever driving.Retriever
	Ingestor  driving.Ingestor

	// DocumentDir is ingested when a request names no directory.
	DocumentDir string
}

// APIResponse is the envelope of every response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RouteRequest is the body of POST /api/v1/route.
type RouteRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// RetrieveRequest is the body of POST /api/v1/retrieve.
type RetrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// IngestRequest is the body of POST /api/v1/ingest.
type IngestRequest struct {
	Directory string `json:"directory"`
}

// Server serves the JSON API.
type Server struct {
	ports  Ports
	router *mux.Router
	now    func() time.Time
}

// NewServer creates the API and registers its routes. Router is required;
// endpoints for missing optional ports answer 501.
func NewServer(ports Ports) (*Server, error) {
	if ports.Router == nil {
		return nil, errors.New("httpapi: router is required")
	}
	s := &Server{ports: ports, router: mux.NewRouter(), now: time.Now}
	s.setupRoutes()
	return s, nil
}

// apiPrefix is the path prefix of every endpoint.
const apiPrefix = "/api/v1"

// setupRoutes registers on the root router with full paths. A method
// mismatch on a subrouter resolves to 404, so there is no subrouter.
func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)
	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	s.router.HandleFunc(apiPrefix+"/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/modes", s.handleModes).Methods(http.MethodGet)
	s.router.HandleFunc(apiPrefix+"/route", s.handleRoute).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/retrieve", s.handleRetrieve).Methods(http.MethodPost)
	s.router.HandleFunc(apiPrefix+"/ingest", s.handleIngest).Methods(http.MethodPost)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, APIResponse{
		Error: "method " + r.Method + " not allowed on " + r.URL.Path,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, APIResponse{Error: "no endpoint at " + r.URL.Path})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled. writeTimeout must
// cover the slowest handler, so it should exceed the LLM timeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	log.Info("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("%s %s in %v", r.Method, r.RequestURI, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":    "healthy",
			"timestamp": s.now().Format(time.RFC3339),
			"version":   Version,
		},
	})
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	modes := s.ports.Router.Modes()
	out := make([]map[string]string, len(modes))
	for i, m := range modes {
		out[i] = map[string]string{
			"mode":        m.String(),
			"label":       m.Label(),
			"description": m.Description(),
		}
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !s.decode(w, r, &req) {
		return
	}
	mode := domain.ModeGeneral
	if strings.TrimSpace(req.Mode) != "" {
		mode = domain.ParseMode(req.Mode)
	}

	res, err := s.ports.Router.Route(r.Context(), req.Query, mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	if s.ports.Retriever == nil {
		s.writeErrorMessage(w, http.StatusNotImplemented, "retrieval is not configured")
		return
	}
	var req RetrieveRequest
	if !s.decode(w, r, &req) {
		return
	}

	matches, err := s.ports.Retriever.Retrieve(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: matches})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if s.ports.Ingestor == nil {
		s.writeErrorMessage(w, http.StatusNotImplemented, "ingestion is not configured")
		return
	}
	var req IngestRequest
	if r.ContentLength != 0 && !s.decode(w, r, &req) {
		return
	}
	dir := strings.TrimSpace(req.Directory)
	if dir == "" {
		dir = s.ports.DocumentDir
	}
	if dir == "" {
		s.writeErrorMessage(w, http.StatusBadRequest, "directory is required")
		return
	}

	report, err := s.ports.Ingestor.Ingest(r.Context(), dir)
	if err != nil {
		s.writeError(w, err)
		return
	}

	warnings := make([]string, len(report.Warnings))
	for i, wn := range report.Warnings {
		warnings[i] = wn.Error()
	}
	s.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"id":          report.ID,
			"directory":   report.Directory,
			"files":       report.Files,
			"pages":       report.Pages,
			"chunks":      report.Chunks,
			"warnings":    warnings,
			"duration_ms": report.Duration().Milliseconds(),
		},
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeErrorMessage(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDirectoryNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIngestInProgress):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("%v", err)
	}
	s.writeErrorMessage(w, status, err.Error())
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("encode response: %v", err)
	}
}
