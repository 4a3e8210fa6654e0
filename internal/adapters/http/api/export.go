package api

import (
	"fmt"
	"net/http"

	"github.com/kou-isk/youcoder/internal/export"
)

// handleExportCSV streams the active timeline as a CSV download. The
// attachment disposition is the service-side equivalent of the synthetic
// download-link click the extension UI performs.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	actions := s.deps.Actions()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(s.deps.ActiveVideo())))
	if err := export.WriteCSV(w, actions); err != nil {
		// Headers are already out; nothing recoverable to send.
		return
	}
}
