package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/toolkit"
	"github.com/jonathan/content-toolkit/internal/types"
)

// handleListContent lists the library, optionally filtered by stage or to
// unassigned items
func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	stageParam := query.Get("stage")
	unassigned, _ := strconv.ParseBool(query.Get("unassigned"))

	if stageParam != "" && unassigned {
		s.errorResponse(w, http.StatusBadRequest, "stage and unassigned are mutually exclusive")
		return
	}

	var stage types.StageKey
	if stageParam != "" {
		var err error
		if stage, err = types.ParseStage(stageParam); err != nil {
			s.failure(w, &ErrValidation{Field: "stage", Message: err.Error()})
			return
		}
	}

	var items []types.ContentItem
	s.withToolkit(func(tk *toolkit.Toolkit) {
		switch {
		case unassigned:
			items = tk.UnassignedContent()
		case stage.IsAssigned():
			items = tk.ContentForStage(stage)
		default:
			items = tk.AllContent()
		}
	})
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

type addContentRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// handleAddContent creates an unassigned content item
func (s *Server) handleAddContent(w http.ResponseWriter, r *http.Request) {
	var req addContentRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}

	var (
		item types.ContentItem
		err  error
	)
	s.withToolkit(func(tk *toolkit.Toolkit) {
		item, err = tk.AddContent(req.Title, req.Type)
	})
	s.mutationResponse(w, http.StatusCreated, map[string]any{"item": item}, err)
}

// handleGetContent retrieves a content item by ID
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id := types.ContentID(r.PathValue("id"))

	var (
		item types.ContentItem
		err  error
	)
	s.withToolkit(func(tk *toolkit.Toolkit) {
		item, err = tk.Content(id)
	})
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

// handleRemoveContent deletes a content item
func (s *Server) handleRemoveContent(w http.ResponseWriter, r *http.Request) {
	id := types.ContentID(r.PathValue("id"))

	var err error
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = tk.RemoveContent(id)
	})
	s.mutationResponse(w, http.StatusOK, map[string]any{"removed": id}, err)
}

type assignContentRequest struct {
	Stage string `json:"stage"`
}

// handleAssignContent moves a content item to a funnel stage
func (s *Server) handleAssignContent(w http.ResponseWriter, r *http.Request) {
	id := types.ContentID(r.PathValue("id"))

	var req assignContentRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.failure(w, err)
		return
	}
	s.setStage(w, id, func(tk *toolkit.Toolkit) error {
		return tk.AssignContent(id, types.StageKey(req.Stage))
	})
}

// handleUnassignContent clears a content item's stage
func (s *Server) handleUnassignContent(w http.ResponseWriter, r *http.Request) {
	id := types.ContentID(r.PathValue("id"))
	s.setStage(w, id, func(tk *toolkit.Toolkit) error {
		return tk.UnassignContent(id)
	})
}

// setStage applies a stage change and responds with the updated item.
func (s *Server) setStage(w http.ResponseWriter, id types.ContentID, apply func(*toolkit.Toolkit) error) {
	var (
		item types.ContentItem
		err  error
	)
	s.withToolkit(func(tk *toolkit.Toolkit) {
		err = apply(tk)
		if err == nil || storage.IsWriteError(err) {
			item, _ = tk.Content(id)
		}
	})
	s.mutationResponse(w, http.StatusOK, map[string]any{"item": item}, err)
}
