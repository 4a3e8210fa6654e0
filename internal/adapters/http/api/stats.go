package api

import "net/http"

// handleStats exposes service statistics for monitoring.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.GetStats())
}
