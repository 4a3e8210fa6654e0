// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SetVideo(ctx context.Context, videoID string)
	ClearVideo(ctx context.Context)
	ActiveVideo() string
	ReportPosition(seconds float64)

	StartAction(ctx context.Context, team, action string)
	StopAction(ctx context.Context, team, action string)
	AddLabel(ctx context.Context, team, action, label string)
	DeleteAction(ctx context.Context, team, action string, start int64) bool
	Actions() []model.Action

	AddTeam(ctx context.Context, name string)
	RemoveTeam(ctx context.Context, name string)
	Teams() []string
}

// StatsProvider exposes service statistics for the stats endpoint.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps  Dependencies
	stats StatsProvider
}

// NewServer creates a new API server bound to its dependencies.
func NewServer(deps Dependencies, stats StatsProvider) *Server {
	return &Server{deps: deps, stats: stats}
}

// Router builds the chi router with all routes attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", instrument("healthz", s.handleHealth))
	r.Get("/stats", instrument("stats", s.handleStats))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Put("/video", instrument("video", s.handleSetVideo))
	r.Delete("/video", instrument("video", s.handleClearVideo))

	r.Post("/actions/start", instrument("actions_start", s.handleStartAction))
	r.Post("/actions/stop", instrument("actions_stop", s.handleStopAction))
	r.Post("/actions/labels", instrument("actions_labels", s.handleAddLabel))
	r.Delete("/actions", instrument("actions_delete", s.handleDeleteAction))
	r.Get("/actions", instrument("actions", s.handleGetActions))
	r.Get("/actions/export", instrument("actions_export", s.handleExportCSV))

	r.Get("/teams", instrument("teams", s.handleGetTeams))
	r.Post("/teams", instrument("teams", s.handleAddTeam))
	r.Delete("/teams/{name}", instrument("teams", s.handleRemoveTeam))

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
