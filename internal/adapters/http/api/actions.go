package api

import (
	"errors"
	"net/http"
	"strings"
)

// actionRequest covers the start/stop/label mutations. position_seconds is
// the extension's report of the current playhead; when present it updates
// the clock before the mutation is applied.
type actionRequest struct {
	Team            string   `json:"team"`
	Action          string   `json:"action"`
	Label           string   `json:"label,omitempty"`
	PositionSeconds *float64 `json:"position_seconds,omitempty"`
}

func (a actionRequest) validate(needLabel bool) error {
	switch {
	case strings.TrimSpace(a.Team) == "":
		return errors.New("missing team")
	case strings.TrimSpace(a.Action) == "":
		return errors.New("missing action")
	case needLabel && strings.TrimSpace(a.Label) == "":
		return errors.New("missing label")
	}
	return nil
}

// deleteRequest identifies one record exactly; start disambiguates records
// sharing team and action.
type deleteRequest struct {
	Team   string `json:"team"`
	Action string `json:"action"`
	Start  int64  `json:"start"`
}

func (d deleteRequest) validate() error {
	switch {
	case strings.TrimSpace(d.Team) == "":
		return errors.New("missing team")
	case strings.TrimSpace(d.Action) == "":
		return errors.New("missing action")
	}
	return nil
}

// decodeAction parses and validates a mutation request, reporting the
// playhead and checking an active video exists. Returns false after writing
// the error response when the request cannot proceed.
func (s *Server) decodeAction(w http.ResponseWriter, r *http.Request, needLabel bool) (actionRequest, bool) {
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return req, false
	}
	if err := req.validate(needLabel); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return req, false
	}
	if s.deps.ActiveVideo() == "" {
		writeError(w, http.StatusConflict, "no_active_video", errors.New("no active video"))
		return req, false
	}
	if req.PositionSeconds != nil {
		s.deps.ReportPosition(*req.PositionSeconds)
	}
	return req, true
}

func (s *Server) handleStartAction(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAction(w, r, false)
	if !ok {
		return
	}
	s.deps.StartAction(r.Context(), req.Team, req.Action)
	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// handleStopAction closes the latest open record. A lookup miss is still a
// 200: the no-op was logged server-side and the UI has nothing to undo.
func (s *Server) handleStopAction(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAction(w, r, false)
	if !ok {
		return
	}
	s.deps.StopAction(r.Context(), req.Team, req.Action)
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (s *Server) handleAddLabel(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeAction(w, r, true)
	if !ok {
		return
	}
	s.deps.AddLabel(r.Context(), req.Team, req.Action, req.Label)
	writeJSON(w, http.StatusOK, map[string]string{"status": "labeled"})
}

// handleDeleteAction reports the outcome as a boolean so the caller can roll
// back optimistic state; a miss is not an HTTP error.
func (s *Server) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	deleted := s.deps.DeleteAction(r.Context(), req.Team, req.Action, req.Start)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleGetActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Actions())
}
