package server

import (
	"net/http"

	"github.com/jonathan/content-toolkit/internal/funnel"
	"github.com/jonathan/content-toolkit/internal/toolkit"
)

// handleFunnel returns one card per funnel stage
func (s *Server) handleFunnel(w http.ResponseWriter, _ *http.Request) {
	var views []funnel.StageView
	s.withToolkit(func(tk *toolkit.Toolkit) {
		views = tk.Funnel()
	})
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"quota":  funnel.Quota,
		"stages": views,
	})
}

// handleGaps returns the per-stage gap report
func (s *Server) handleGaps(w http.ResponseWriter, _ *http.Request) {
	var report funnel.Report
	s.withToolkit(func(tk *toolkit.Toolkit) {
		report = tk.Gaps()
	})
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"quota":     funnel.Quota,
		"stages":    report,
		"total_gap": report.TotalGap(),
	})
}
