// Package storage provides the key-value persistence layer for project data.
// Stores are injected into the history and project layers so they can run
// against an in-memory fake in tests and BadgerDB in production.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when a key has no value
var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal key-value interface over the local database
type Store interface {
	// Get returns the value for a key, or ErrKeyNotFound
	Get(key string) ([]byte, error)
	// Set writes a value for a key, overwriting any existing value
	Set(key string, value []byte) error
	// Delete removes a key; deleting a missing key is not an error
	Delete(key string) error
	// Has reports whether a key exists
	Has(key string) (bool, error)
	// Close releases the underlying database
	Close() error
}

// Persisted key layout. Per-project data hangs off the project id; the two
// legacy keys predate project namespacing and are consumed once by migration.
const (
	// KeyProjectsIndex stores the ProjectsIndex
	KeyProjectsIndex = "projects_index"
	// KeyResumePrefix prefixes per-project document keys
	KeyResumePrefix = "resume_"
	// KeyChatHistoryPrefix prefixes per-project transcript keys
	KeyChatHistoryPrefix = "chat_history_"
	// KeyResumeHistoryPrefix prefixes per-project history keys
	KeyResumeHistoryPrefix = "resume_history_"
	// KeyLegacyResumeData is the pre-namespacing document key
	KeyLegacyResumeData = "resumeData"
	// KeyLegacyResumeHistory is the pre-namespacing history key
	KeyLegacyResumeHistory = "resumeHistory"
)

// ResumeKey returns the document key for a project
func ResumeKey(projectID string) string { return KeyResumePrefix + projectID }

// ChatHistoryKey returns the transcript key for a project
func ChatHistoryKey(projectID string) string { return KeyChatHistoryPrefix + projectID }

// ResumeHistoryKey returns the history key for a project
func ResumeHistoryKey(projectID string) string { return KeyResumeHistoryPrefix + projectID }
