// Package history maintains the append-only version history of each project's
// resume document. Every committed snapshot is a full copy; a single latest
// marker identifies the live document, and reverting re-points the marker
// without discarding any entries.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
)

// InitialMessage is the causal message on the entry seeded at project creation
const InitialMessage = "Initial version"

// NotFoundError indicates a history timestamp that does not exist for a project
type NotFoundError struct {
	ProjectID string
	Timestamp string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("history entry %s not found in project %s", e.Timestamp, e.ProjectID)
}

// Store manages per-project history sequences on top of a key-value store
type Store struct {
	kv storage.Store
}

// New creates a history store over the given key-value backend
func New(kv storage.Store) *Store {
	return &Store{kv: kv}
}

// Entries returns a project's history in persisted (insertion) order.
// A project with no history yet yields an empty slice.
func (s *Store) Entries(projectID string) ([]types.HistoryEntry, error) {
	data, err := s.kv.Get(storage.ResumeHistoryKey(projectID))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []types.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", projectID, err)
	}

	var entries []types.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history for %s: %w", projectID, err)
	}
	return entries, nil
}

// Latest returns the entry carrying the latest marker, or a NotFoundError
// for a project whose history is empty.
func (s *Store) Latest(projectID string) (types.HistoryEntry, error) {
	entries, err := s.Entries(projectID)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	for _, entry := range entries {
		if entry.IsLatest {
			return entry, nil
		}
	}
	return types.HistoryEntry{}, &NotFoundError{ProjectID: projectID, Timestamp: "latest"}
}

// Seed writes the first "Initial version" entry for a freshly created project.
// It is a no-op when the project already has history.
func (s *Store) Seed(projectID string, doc types.ResumeDocument) error {
	entries, err := s.Entries(projectID)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return nil
	}
	_, err = s.Commit(projectID, doc, InitialMessage)
	return err
}

// Commit appends a new snapshot as the project's latest entry and makes it
// the active document. Prior entries are never mutated beyond clearing their
// latest marker, and never removed.
func (s *Store) Commit(projectID string, snapshot types.ResumeDocument, message string) (types.HistoryEntry, error) {
	entries, err := s.Entries(projectID)
	if err != nil {
		return types.HistoryEntry{}, err
	}

	for i := range entries {
		entries[i].IsLatest = false
	}

	entry := types.HistoryEntry{
		Snapshot:  snapshot,
		Timestamp: s.nextTimestamp(entries),
		Message:   message,
		IsLatest:  true,
	}
	entries = append(entries, entry)

	if err := s.persist(projectID, entries, snapshot); err != nil {
		return types.HistoryEntry{}, err
	}
	return entry, nil
}

// Revert re-marks the entry with the given timestamp as latest and makes its
// snapshot the active document. Later entries are kept, so reverting is
// itself reversible.
func (s *Store) Revert(projectID, timestamp string) error {
	entries, err := s.Entries(projectID)
	if err != nil {
		return err
	}

	found := -1
	for i, entry := range entries {
		if entry.Timestamp == timestamp {
			found = i
			break
		}
	}
	if found < 0 {
		return &NotFoundError{ProjectID: projectID, Timestamp: timestamp}
	}

	for i := range entries {
		entries[i].IsLatest = i == found
	}
	return s.persist(projectID, entries, entries[found].Snapshot)
}

// Delete removes a project's entire history sequence
func (s *Store) Delete(projectID string) error {
	return s.kv.Delete(storage.ResumeHistoryKey(projectID))
}

// Replace overwrites a project's entire history sequence, used by legacy
// migration to carry an existing history across verbatim.
func (s *Store) Replace(projectID string, entries []types.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history for %s: %w", projectID, err)
	}
	return s.kv.Set(storage.ResumeHistoryKey(projectID), data)
}

// persist writes the history sequence and the active document as one logical
// unit; the first failing write aborts so inconsistency is surfaced, not hidden.
func (s *Store) persist(projectID string, entries []types.HistoryEntry, active types.ResumeDocument) error {
	historyData, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history for %s: %w", projectID, err)
	}
	if err := s.kv.Set(storage.ResumeHistoryKey(projectID), historyData); err != nil {
		return fmt.Errorf("write history for %s: %w", projectID, err)
	}

	docData, err := json.Marshal(active)
	if err != nil {
		return fmt.Errorf("encode document for %s: %w", projectID, err)
	}
	if err := s.kv.Set(storage.ResumeKey(projectID), docData); err != nil {
		return fmt.Errorf("write document for %s: %w", projectID, err)
	}
	return nil
}

// nextTimestamp returns an RFC3339Nano creation instant strictly greater than
// every existing entry's, so timestamps stay unique within a project even
// when commits land inside one clock tick.
func (s *Store) nextTimestamp(entries []types.HistoryEntry) string {
	now := time.Now().UTC()
	var last time.Time
	for _, entry := range entries {
		if t, err := time.Parse(time.RFC3339Nano, entry.Timestamp); err == nil && t.After(last) {
			last = t
		}
	}
	if !now.After(last) {
		now = last.Add(time.Nanosecond)
	}
	return now.Format(time.RFC3339Nano)
}
