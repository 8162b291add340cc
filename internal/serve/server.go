// Package serve exposes the research pipeline over HTTP.
package serve

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/collab-radar/internal/export"
	"github.com/sells-group/collab-radar/internal/model"
	"github.com/sells-group/collab-radar/internal/research"
	"github.com/sells-group/collab-radar/internal/store"
)

// Server handles the HTTP API.
type Server struct {
	svc *research.Service
}

// New creates a Server over the research service.
func New(svc *research.Service) *Server {
	return &Server{svc: svc}
}

// Router builds the chi router with all API routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/research", s.handleResearch)
	r.Get("/api/export", s.handleExport)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleResearch runs a research request synchronously. Research can take
// minutes; callers are expected to hold the connection open.
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	var req model.ResearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, eris.Cause(err).Error())
		return
	}

	resp, err := s.svc.Research(r.Context(), req)
	if err != nil {
		zap.L().Error("research request failed",
			zap.String("subject", req.SubjectCompany),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "research failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleExport streams the most recent run, or the run named by ?run_id, as
// a spreadsheet download. ?format selects csv (default) or xlsx.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.Cause(err).Error())
		return
	}

	var run *model.ResearchRun
	if id := r.URL.Query().Get("run_id"); id != "" {
		run, err = s.svc.GetRun(r.Context(), id)
	} else {
		run, err = s.svc.LastRun(r.Context())
	}
	if err != nil {
		if eris.Is(err, store.ErrNoRuns) {
			writeError(w, http.StatusNotFound, "no research run to export")
			return
		}
		writeError(w, http.StatusNotFound, eris.Cause(err).Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename()+`"`)
	if err := export.Write(w, format, run.Results); err != nil {
		// Headers are already sent; all that is left is logging.
		zap.L().Error("export write failed", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
