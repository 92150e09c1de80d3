// Package server provides the HTTP REST API for the resume editor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-editor/internal/chat"
	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/project"
	"github.com/jonathan/resume-editor/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	kv           storage.Store
	projects     *project.Manager
	history      *history.Store
	orchestrator *chat.Orchestrator
	verbose      bool
}

// Config holds server configuration
type Config struct {
	Port    int
	Store   storage.Store
	Client  llm.Client
	Verbose bool
}

// New creates a new server instance. Legacy single-project data found in the
// store is migrated into the project model before the first request.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a store")
	}

	hist := history.New(cfg.Store)
	projects := project.New(cfg.Store, hist)

	s := &Server{
		kv:           cfg.Store,
		projects:     projects,
		history:      hist,
		orchestrator: chat.New(cfg.Client, projects, hist),
		verbose:      cfg.Verbose,
	}

	if result := projects.MigrateLegacy(); result.Success && result.DefaultProjectID != "" {
		log.Printf("Migrated legacy data into project %s", result.DefaultProjectID)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Project endpoints
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("POST /projects", s.handleCreateProject)
	mux.HandleFunc("GET /projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /projects/{id}", s.handleRenameProject)
	mux.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)
	mux.HandleFunc("POST /projects/{id}/activate", s.handleActivateProject)
	mux.HandleFunc("GET /projects/{id}/export", s.handleExportProject)

	// Document endpoints
	mux.HandleFunc("GET /projects/{id}/document", s.handleGetDocument)
	mux.HandleFunc("PUT /projects/{id}/document", s.handleImportDocument)
	mux.HandleFunc("GET /projects/{id}/validation", s.handleValidateDocument)

	// Chat endpoints
	mux.HandleFunc("GET /projects/{id}/chat", s.handleGetTranscript)
	mux.HandleFunc("POST /projects/{id}/chat", s.handleSendMessage)
	mux.HandleFunc("POST /projects/{id}/match", s.handleMatchJob)

	// History endpoints
	mux.HandleFunc("GET /projects/{id}/history", s.handleListHistory)
	mux.HandleFunc("POST /projects/{id}/history/revert", s.handleRevert)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // chat turns wait on the completion service
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests. It returns when ctx is cancelled or a
// termination signal arrives.
func (s *Server) Start(ctx context.Context) error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	case <-stop:
	}
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.verbose {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failFromError writes an error response with a status derived from the error type
func (s *Server) failFromError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
