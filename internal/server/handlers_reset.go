package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/content-toolkit/internal/reset"
	"github.com/jonathan/content-toolkit/internal/toolkit"
)

type resetRequest struct {
	Confirm bool `json:"confirm"`
}

// handleReset wipes every piece of toolkit state. The body must carry
// {"confirm": true}.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.failure(w, err)
		return
	}

	var err error
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = tk.ResetAll(req.Confirm)
	})

	var partial *reset.Error
	if errors.As(err, &partial) {
		// The session is clean but storage may still hold old data.
		s.metrics.writeFailures.Inc()
		s.jsonResponse(w, http.StatusInternalServerError, map[string]any{
			"error":     err.Error(),
			"in_memory": "reset",
		})
		return
	}
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}
