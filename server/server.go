// Package server exposes the extraction pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness probe
//	POST /v1/ranklist?problems=N     pdf2json body, srk JSON response
//	POST /v1/report?problems=N       pdf2json body, HTML review page
//	POST /v1/rows?problems=N         pdf2json body, decoded rows and warnings
//	GET  /debug/...                  pprof and expvar, outside production
//
// Malformed requests get 400, documents whose structure is not recognized
// get 422.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/tsawler/rankgrid"
	"github.com/tsawler/rankgrid/config"
	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/report"
	"github.com/tsawler/rankgrid/tables"
)

// Server handles extraction requests
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a server. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Router returns the HTTP handler with every route mounted
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)
	if !s.cfg.IsProduction() {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/ranklist", s.ranklist)
		r.Post("/report", s.report)
		r.Post("/rows", s.rows)
	})

	return r
}

// ListenAndServe serves the router on the configured address
func (s *Server) ListenAndServe() error {
	s.logger.Info("server starting", zap.String("addr", s.cfg.Server.Addr))
	return http.ListenAndServe(s.cfg.Server.Addr, s.Router())
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("requestId", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Page   *int   `json:"page,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and writes it as JSON
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var se *tables.StructureError
	switch {
	case errors.As(err, &se):
		resp := errorResponse{Error: err.Error(), Reason: string(se.Reason)}
		if se.Page >= 0 {
			page := se.Page
			resp.Page = &page
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, errBadRequest), errors.Is(err, tables.ErrInvalidProblemCount):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("extraction failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

var errBadRequest = errors.New("bad request")

// extractor builds an extractor from the request body and query
func (s *Server) extractor(w http.ResponseWriter, r *http.Request) (*rankgrid.Extractor, error) {
	problems := s.cfg.ProblemCount
	if q := r.URL.Query().Get("problems"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return nil, fmt.Errorf("%w: problems must be an integer", errBadRequest)
		}
		problems = n
	}

	engine := s.cfg.Engine()
	engine.ProblemCount = problems
	if err := engine.Validate(); err != nil {
		return nil, err
	}

	body := r.Body
	if s.cfg.Server.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}
	ext := rankgrid.FromReader(body).WithConfig(engine).WithLogger(s.logger)
	if _, err := ext.PageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return ext, nil
}

func (s *Server) ranklist(w http.ResponseWriter, r *http.Request) {
	ext, err := s.extractor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	list, _, err := ext.Ranklist(s.cfg.SrkContest())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type rowsResponse struct {
	Columns  []model.ColumnRange `json:"columns"`
	Rows     []model.RowRecord   `json:"rows"`
	Warnings []string            `json:"warnings"`
}

func (s *Server) rows(w http.ResponseWriter, r *http.Request) {
	ext, err := s.extractor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, warnings, err := ext.Result()
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := rowsResponse{Columns: res.Columns, Rows: res.Records, Warnings: make([]string, 0, len(warnings))}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	ext, err := s.extractor(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, warnings, err := ext.Result()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, s.cfg.Contest.Title, res.Columns, res.Records, warnings); err != nil {
		s.logger.Error("failed to write report", zap.Error(err))
	}
}
