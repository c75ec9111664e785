// Package server exposes the analysis engine over HTTP.
//
// The server accepts raw manifest content, so callers never need to share a
// filesystem with it. Reports are optionally archived to a configured store.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mwittig/packsize/pkg/analyzer"
	"github.com/mwittig/packsize/pkg/errors"
	"github.com/mwittig/packsize/pkg/manifest"
	"github.com/mwittig/packsize/pkg/store"
)

// Server handles analysis requests over HTTP.
type Server struct {
	analyzer *analyzer.Analyzer
	store    store.Store // nil disables report archiving
	logger   *log.Logger
}

// New creates a Server. st may be nil to disable the report endpoints.
func New(a *analyzer.Analyzer, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{analyzer: a, store: st, logger: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	if s.store != nil {
		r.Get("/api/reports", s.handleListReports)
		r.Get("/api/reports/{id}", s.handleGetReport)
	}

	return r
}

type analyzeRequest struct {
	Ecosystem string            `json:"ecosystem"`
	Manifests []manifestPayload `json:"manifests"`
	Save      bool              `json:"save,omitempty"`
}

type manifestPayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if len(req.Manifests) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "no manifests provided"))
		return
	}

	eco, err := manifest.ParseEcosystem(req.Ecosystem)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sources := make([]analyzer.Source, 0, len(req.Manifests))
	for _, m := range req.Manifests {
		sources = append(sources, analyzer.Source{Name: m.Name, Content: []byte(m.Content)})
	}

	report, err := s.analyzer.AnalyzeSources(r.Context(), sources, eco)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if req.Save && s.store != nil {
		if err := s.store.Save(r.Context(), report); err != nil {
			s.logger.Warn("failed to archive report", "id", report.ID, "err", err)
		}
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.List(r.Context(), 50)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reports == nil {
		reports = []analyzer.Report{}
	}
	s.writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeParseError, errors.ErrCodeUnsupportedEcosystem:
		status = http.StatusBadRequest
	case errors.ErrCodeReportNotFound, errors.ErrCodeManifestNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
