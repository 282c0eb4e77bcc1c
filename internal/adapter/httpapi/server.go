package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/usecase/executor"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/rs/cors"
)

// PipelineFactory yields a fresh isolated pipeline per request so concurrent
// requests never share scratch files.
type PipelineFactory func() input.AnalysisPipeline

type Health struct {
	HasPlannerKey    bool `json:"has_planner_key"`
	HasExecutorToken bool `json:"has_executor_token"`
}

type Server struct {
	newPipeline PipelineFactory
	logger      output.LoggerPort
	health      Health
}

func NewServer(newPipeline PipelineFactory, logger output.LoggerPort, health Health) *Server {
	return &Server{
		newPipeline: newPipeline,
		logger:      logger,
		health:      health,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	httpLogger := httplog.NewLogger("analyst-agent", httplog.Options{JSON: true})
	r.Use(httplog.RequestLogger(httpLogger))
	r.Use(cors.AllowAll().Handler)

	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealth)
	r.Post("/api/", s.handleAnalyze)
	r.Post("/api/analyze", s.handleAnalyze)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Data Analyst Agent is running. POST /api/ with questions.txt",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"has_planner_key":    s.health.HasPlannerKey,
		"has_executor_token": s.health.HasExecutorToken,
	})
}

// handleAnalyze accepts a multipart questions file, runs the full pipeline
// and responds with exactly the final JSON array.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	task := strings.TrimSpace(string(raw))
	if task == "" {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	answer, err := s.newPipeline().Run(r.Context(), task)
	if err != nil {
		s.logger.Error("Pipeline failed", "error", err)
		if errors.Is(err, executor.ErrBudgetExceeded) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "timed out while executing the plan")
			return
		}
		writeError(w, http.StatusInternalServerError, "execution failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
