package server

import (
	"encoding/json"
	"net/http"
	"strings"
)

// handleGetTranscript returns a project's conversation transcript
func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	transcript, err := s.projects.Transcript(r.PathValue("id"))
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"messages": transcript,
		"count":    len(transcript),
	})
}

// handleSendMessage runs one chat turn against a project's document
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Message is required")
		return
	}

	result, err := s.orchestrator.SendMessage(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleMatchJob compares a project's document against a job description
func (s *Server) handleMatchJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JobDescription string `json:"jobDescription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job description is required")
		return
	}

	match, err := s.orchestrator.MatchJob(r.Context(), r.PathValue("id"), req.JobDescription)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, match)
}
