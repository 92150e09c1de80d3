package server

import (
	"encoding/json"
	"net/http"
)

// handleListHistory returns all snapshots for a project
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.projects.Get(id); err != nil {
		s.failFromError(w, err)
		return
	}

	entries, err := s.history.Entries(id)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleRevert makes an earlier snapshot the active document again.
// The snapshot is re-marked, not copied, so no history is lost.
func (s *Server) handleRevert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Timestamp == "" {
		s.errorResponse(w, http.StatusBadRequest, "Timestamp is required")
		return
	}

	id := r.PathValue("id")
	if _, err := s.projects.Get(id); err != nil {
		s.failFromError(w, err)
		return
	}

	if err := s.history.Revert(id, req.Timestamp); err != nil {
		s.failFromError(w, err)
		return
	}

	doc, err := s.projects.Document(id)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"reverted": true,
		"document": doc,
	})
}
