package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type teamRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGetTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Teams())
}

func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing name"))
		return
	}
	// Re-adding an existing team is a silent no-op; the registry dedupes.
	s.deps.AddTeam(r.Context(), req.Name)
	writeJSON(w, http.StatusOK, s.deps.Teams())
}

func (s *Server) handleRemoveTeam(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing name"))
		return
	}
	// Removing an absent team is tolerated, same as the registry itself.
	s.deps.RemoveTeam(r.Context(), name)
	writeJSON(w, http.StatusOK, s.deps.Teams())
}
