package server

import (
	"encoding/json"
	"net/http"
)

// handleListProjects lists all projects with the active project marked
func (s *Server) handleListProjects(w http.ResponseWriter, _ *http.Request) {
	index, err := s.projects.Index()
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"projects":        index.Projects,
		"activeProjectId": index.ActiveProjectID,
	})
}

// handleCreateProject creates a new project with a default document
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	proj, err := s.projects.Create(req.Name, nil)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, proj)
}

// handleGetProject retrieves a project by ID
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.PathValue("id"))
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, proj)
}

// handleRenameProject renames a project
func (s *Server) handleRenameProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := r.PathValue("id")
	if err := s.projects.Rename(id, req.Name); err != nil {
		s.failFromError(w, err)
		return
	}

	proj, err := s.projects.Get(id)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, proj)
}

// handleDeleteProject deletes a project and all its data
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.PathValue("id")); err != nil {
		s.failFromError(w, err)
		return
	}

	index, err := s.projects.Index()
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"deleted":         true,
		"activeProjectId": index.ActiveProjectID,
	})
}

// handleActivateProject marks a project as active
func (s *Server) handleActivateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.projects.SetActive(id); err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"activeProjectId": id})
}

// handleExportProject returns everything a project owns in one payload
func (s *Server) handleExportProject(w http.ResponseWriter, r *http.Request) {
	data, err := s.projects.Data(r.PathValue("id"))
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, data)
}
