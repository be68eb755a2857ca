package server

import (
	"net/http"

	"github.com/jonathan/content-toolkit/internal/toolkit"
	"github.com/jonathan/content-toolkit/internal/types"
)

// handleGetProfile returns the user profile
func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	var p types.UserProfile
	s.withToolkit(func(tk *toolkit.Toolkit) {
		p = tk.Profile()
	})
	s.jsonResponse(w, http.StatusOK, p)
}

// handleSetProfile replaces the user profile
func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var req types.UserProfile
	if err := decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}

	var (
		p   types.UserProfile
		err error
	)
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = tk.SetProfile(req)
		p = tk.Profile()
	})
	s.mutationResponse(w, http.StatusOK, map[string]any{"profile": p}, err)
}

type copyBody struct {
	Text string `json:"text"`
}

// handleGetCopy returns the generated copy blob
func (s *Server) handleGetCopy(w http.ResponseWriter, _ *http.Request) {
	var text string
	s.withToolkit(func(tk *toolkit.Toolkit) {
		text = tk.GeneratedCopy()
	})
	s.jsonResponse(w, http.StatusOK, copyBody{Text: text})
}

// handleSetCopy replaces the generated copy blob
func (s *Server) handleSetCopy(w http.ResponseWriter, r *http.Request) {
	var req copyBody
	if err := decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}

	var err error
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = tk.SetGeneratedCopy(req.Text)
	})
	s.mutationResponse(w, http.StatusOK, map[string]any{"length": len(req.Text)}, err)
}
