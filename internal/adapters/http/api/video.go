package api

import (
	"errors"
	"net/http"
	"strings"
)

// videoRequest activates a video for tagging.
type videoRequest struct {
	VideoID         string   `json:"video_id"`
	PositionSeconds *float64 `json:"position_seconds,omitempty"`
}

func (v videoRequest) validate() error {
	if strings.TrimSpace(v.VideoID) == "" {
		return errors.New("missing video_id")
	}
	return nil
}

// handleSetVideo activates the given video and loads its persisted timeline.
func (s *Server) handleSetVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.PositionSeconds != nil {
		s.deps.ReportPosition(*req.PositionSeconds)
	}
	s.deps.SetVideo(r.Context(), req.VideoID)
	writeJSON(w, http.StatusOK, map[string]any{
		"video_id": req.VideoID,
		"actions":  len(s.deps.Actions()),
	})
}

// handleClearVideo drops the in-memory view when the user navigates away.
// Persisted timelines are untouched.
func (s *Server) handleClearVideo(w http.ResponseWriter, r *http.Request) {
	s.deps.ClearVideo(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
