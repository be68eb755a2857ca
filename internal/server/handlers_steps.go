package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/content-toolkit/internal/toolkit"
	"github.com/jonathan/content-toolkit/internal/types"
)

// handleDashboard returns the progress metrics and profile
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	var body map[string]any
	s.withToolkit(func(tk *toolkit.Toolkit) {
		body = map[string]any{
			"metrics": tk.Metrics(),
			"profile": tk.Profile(),
		}
	})
	s.jsonResponse(w, http.StatusOK, body)
}

// handleListSteps returns every framework step with its completion flag
func (s *Server) handleListSteps(w http.ResponseWriter, _ *http.Request) {
	var steps []types.StepStatus
	s.withToolkit(func(tk *toolkit.Toolkit) {
		steps = tk.Steps()
	})
	s.jsonResponse(w, http.StatusOK, map[string]any{"steps": steps})
}

type setStepRequest struct {
	Completed *bool `json:"completed"`
}

// handleSetStep marks a step complete or incomplete
func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid step ID")
		return
	}

	var req setStepRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}
	if req.Completed == nil {
		s.failure(w, &ErrValidation{Field: "completed", Message: "is required"})
		return
	}

	var metrics types.Metrics
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = tk.SetStepCompleted(types.StepID(id), *req.Completed)
		metrics = tk.Metrics()
	})
	s.mutationResponse(w, http.StatusOK, map[string]any{
		"step":      id,
		"completed": *req.Completed,
		"metrics":   metrics,
	}, err)
}
