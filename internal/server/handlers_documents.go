package server

import (
	"io"
	"net/http"

	"github.com/jonathan/resume-editor/internal/validation"
)

// maxDocumentBytes bounds imported document payloads
const maxDocumentBytes = 1 << 20

// handleGetDocument returns a project's current document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.projects.Document(r.PathValue("id"))
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleImportDocument replaces a project's document with the request body
func (s *Server) handleImportDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	doc, err := s.orchestrator.ImportDocument(r.PathValue("id"), body)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleValidateDocument reports shape problems in a project's document
func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.projects.Document(r.PathValue("id"))
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, validation.ValidateDocument(doc))
}
