// Package http exposes a planned timeline, the recorded runs and the live
// event stream of a run over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/cadence/api"
	"github.com/aretw0/cadence/internal/presentation/graph"
	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Server serves read-only views of an experiment.
type Server struct {
	Timeline    *domain.Timeline
	RefreshRate float64

	// Log is optional; run endpoints answer 404 without it.
	Log ports.EventLog
	// Metrics is optional; mounted at /metrics.
	Metrics http.Handler
	// MCP is optional; mounted at /mcp outside request validation.
	MCP http.Handler

	Streams *StreamManager
	Logger  *slog.Logger
}

// NewHandler creates the HTTP handler of the server. Requests to the routes
// of api/openapi.yaml are validated against it.
func NewHandler(s *Server) (http.Handler, error) {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.Logger)
	}

	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if s.MCP != nil {
		r.Mount("/mcp", s.MCP)
	}
	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", s.GetHealth)
		r.Route("/timeline", func(r chi.Router) {
			r.Get("/", s.GetTimeline)
			r.Get("/gantt", s.GetGantt)
			r.Get("/trials/{index}", s.GetTrial)
		})
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.ListRuns)
			r.Get("/{runID}/events", s.GetRunEvents)
			r.Delete("/{runID}", s.DeleteRun)
		})
		r.Get("/events", s.SubscribeEvents)
		if s.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", s.Metrics)
		}
	})
	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(api.Document)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetTimeline handles GET /timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	if s.Timeline == nil {
		http.Error(w, "No timeline planned", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Timeline)
}

// GetGantt handles GET /timeline/gantt.
func (s *Server) GetGantt(w http.ResponseWriter, r *http.Request) {
	if s.Timeline == nil {
		http.Error(w, "No timeline planned", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateGantt(s.Timeline, s.RefreshRate, nil))
}

// GetTrial handles GET /timeline/trials/{index}.
func (s *Server) GetTrial(w http.ResponseWriter, r *http.Request) {
	if s.Timeline == nil {
		http.Error(w, "No timeline planned", http.StatusNotFound)
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Trial index must be an integer", http.StatusBadRequest)
		return
	}
	if idx < 0 || idx >= len(s.Timeline.Trials) {
		http.Error(w, fmt.Sprintf("Trial %d not found", idx), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Timeline.Trials[idx])
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if s.Log == nil {
		s.writeJSON(w, http.StatusOK, []string{})
		return
	}
	runs, err := s.Log.Runs(r.Context())
	if err != nil {
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		s.Logger.Error("ListRuns failed", "error", err)
		return
	}
	if runs == nil {
		runs = []string{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// GetRunEvents handles GET /runs/{runID}/events.
func (s *Server) GetRunEvents(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	if s.Log == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	records, err := s.Log.List(r.Context(), runID)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, "Run not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read run", http.StatusInternalServerError)
		s.Logger.Error("GetRunEvents failed", "run_id", runID, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// DeleteRun handles DELETE /runs/{runID}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.Log == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	runID := chi.URLParam(r, "runID")
	if err := s.Log.Delete(r.Context(), runID); err != nil {
		http.Error(w, "Failed to delete run", http.StatusInternalServerError)
		s.Logger.Error("DeleteRun failed", "run_id", runID, "error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
