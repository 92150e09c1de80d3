package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/storage"
	"github.com/jonathan/resume-editor/internal/types"
)

// nameParams carries a candidate project name through struct validation.
// The excludesall set is the path-unsafe characters / \ : * ? " < > |
// in hex notation.
type nameParams struct {
	Name string `validate:"required,max=100,excludesall=0x2F0x5C0x3A0x2A0x3F0x220x3C0x3E0x7C"`
}

// Manager performs CRUD over projects and their namespaced data
type Manager struct {
	kv       storage.Store
	history  *history.Store
	validate *validator.Validate
}

// New creates a project manager over the given key-value backend
func New(kv storage.Store, hist *history.Store) *Manager {
	return &Manager{
		kv:       kv,
		history:  hist,
		validate: validator.New(),
	}
}

// Index returns the persisted projects index, or an empty index when none
// has been written yet.
func (m *Manager) Index() (types.ProjectsIndex, error) {
	data, err := m.kv.Get(storage.KeyProjectsIndex)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return types.ProjectsIndex{Projects: []types.Project{}}, nil
	}
	if err != nil {
		return types.ProjectsIndex{}, fmt.Errorf("load projects index: %w", err)
	}

	var index types.ProjectsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return types.ProjectsIndex{}, fmt.Errorf("decode projects index: %w", err)
	}
	if index.Projects == nil {
		index.Projects = []types.Project{}
	}
	return index, nil
}

func (m *Manager) saveIndex(index types.ProjectsIndex) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode projects index: %w", err)
	}
	if err := m.kv.Set(storage.KeyProjectsIndex, data); err != nil {
		return fmt.Errorf("write projects index: %w", err)
	}
	return nil
}

// checkName validates naming rules and, when excludeID is non-empty, allows
// the project with that id to keep its own name.
func (m *Manager) checkName(name, excludeID string, index types.ProjectsIndex) error {
	if err := m.validate.Struct(nameParams{Name: name}); err != nil {
		reason := "must be non-empty, at most 100 characters, without path characters"
		return &InvalidNameError{Name: name, Reason: reason}
	}
	for _, p := range index.Projects {
		if p.ID != excludeID && strings.EqualFold(p.Name, name) {
			return &DuplicateNameError{Name: name}
		}
	}
	return nil
}

// Create creates a project with the given name, seeding its document (the
// default template when initial is nil), an empty transcript, and an
// "Initial version" history entry. The first project created becomes active.
func (m *Manager) Create(name string, initial *types.ResumeDocument) (*types.Project, error) {
	name = strings.TrimSpace(name)

	index, err := m.Index()
	if err != nil {
		return nil, err
	}
	if err := m.checkName(name, "", index); err != nil {
		return nil, err
	}

	doc := types.DefaultDocument()
	if initial != nil {
		doc = *initial
	}

	now := time.Now().UTC().Format(time.RFC3339)
	proj := types.Project{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Per-project data first, index entry last; if the index write fails the
	// data keys are rolled back so no orphaned document is left behind.
	if err := m.writeTranscript(proj.ID, []types.ChatMessage{}); err != nil {
		return nil, err
	}
	if err := m.history.Seed(proj.ID, doc); err != nil {
		m.deleteData(proj.ID)
		return nil, err
	}

	index.Projects = append(index.Projects, proj)
	if index.ActiveProjectID == "" {
		index.ActiveProjectID = proj.ID
	}
	if err := m.saveIndex(index); err != nil {
		m.deleteData(proj.ID)
		return nil, err
	}
	return &proj, nil
}

// Rename changes a project's name, applying the same rules as Create
func (m *Manager) Rename(id, newName string) error {
	newName = strings.TrimSpace(newName)

	index, err := m.Index()
	if err != nil {
		return err
	}
	pos := findProject(index, id)
	if pos < 0 {
		return &NotFoundError{ID: id}
	}
	if err := m.checkName(newName, id, index); err != nil {
		return err
	}

	index.Projects[pos].Name = newName
	index.Projects[pos].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return m.saveIndex(index)
}

// Delete removes a project and cascades to its document, transcript, and
// history. When the deleted project was active, the first remaining project
// by creation order becomes active, or none if no projects remain.
func (m *Manager) Delete(id string) error {
	index, err := m.Index()
	if err != nil {
		return err
	}
	pos := findProject(index, id)
	if pos < 0 {
		return &NotFoundError{ID: id}
	}

	m.deleteData(id)
	index.Projects = append(index.Projects[:pos], index.Projects[pos+1:]...)

	if index.ActiveProjectID == id {
		index.ActiveProjectID = ""
		if len(index.Projects) > 0 {
			index.ActiveProjectID = index.Projects[0].ID
		}
	}
	return m.saveIndex(index)
}

// SetActive marks a project as the active one
func (m *Manager) SetActive(id string) error {
	index, err := m.Index()
	if err != nil {
		return err
	}
	if findProject(index, id) < 0 {
		return &NotFoundError{ID: id}
	}
	index.ActiveProjectID = id
	return m.saveIndex(index)
}

// GetAll returns all projects in creation order
func (m *Manager) GetAll() ([]types.Project, error) {
	index, err := m.Index()
	if err != nil {
		return nil, err
	}
	return index.Projects, nil
}

// Get returns one project by id
func (m *Manager) Get(id string) (*types.Project, error) {
	index, err := m.Index()
	if err != nil {
		return nil, err
	}
	pos := findProject(index, id)
	if pos < 0 {
		return nil, &NotFoundError{ID: id}
	}
	proj := index.Projects[pos]
	return &proj, nil
}

// GetActive returns the active project, falling back to the first project
// (and repairing the marker) if the stored active id dangles. Returns nil
// when no projects exist.
func (m *Manager) GetActive() (*types.Project, error) {
	index, err := m.Index()
	if err != nil {
		return nil, err
	}
	if len(index.Projects) == 0 {
		return nil, nil
	}

	if pos := findProject(index, index.ActiveProjectID); pos >= 0 {
		proj := index.Projects[pos]
		return &proj, nil
	}

	index.ActiveProjectID = index.Projects[0].ID
	if err := m.saveIndex(index); err != nil {
		return nil, err
	}
	proj := index.Projects[0]
	return &proj, nil
}

// Document returns a project's current active document
func (m *Manager) Document(id string) (types.ResumeDocument, error) {
	data, err := m.kv.Get(storage.ResumeKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return types.ResumeDocument{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("load document for %s: %w", id, err)
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("decode document for %s: %w", id, err)
	}
	return doc, nil
}

// Transcript returns a project's conversation transcript in order
func (m *Manager) Transcript(id string) ([]types.ChatMessage, error) {
	data, err := m.kv.Get(storage.ChatHistoryKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []types.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript for %s: %w", id, err)
	}

	var messages []types.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decode transcript for %s: %w", id, err)
	}
	return messages, nil
}

// AppendMessages appends transcript messages and refreshes the project's
// last-message preview.
func (m *Manager) AppendMessages(id string, messages ...types.ChatMessage) error {
	transcript, err := m.Transcript(id)
	if err != nil {
		return err
	}
	transcript = append(transcript, messages...)
	if err := m.writeTranscript(id, transcript); err != nil {
		return err
	}

	if len(messages) == 0 {
		return nil
	}
	preview := messages[len(messages)-1].Content
	if runes := []rune(preview); len(runes) > 120 {
		preview = string(runes[:120])
	}

	index, err := m.Index()
	if err != nil {
		return err
	}
	pos := findProject(index, id)
	if pos < 0 {
		return &NotFoundError{ID: id}
	}
	index.Projects[pos].LastChatMessage = preview
	index.Projects[pos].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return m.saveIndex(index)
}

// Data assembles everything a project owns
func (m *Manager) Data(id string) (*types.ProjectData, error) {
	doc, err := m.Document(id)
	if err != nil {
		return nil, err
	}
	transcript, err := m.Transcript(id)
	if err != nil {
		return nil, err
	}
	entries, err := m.history.Entries(id)
	if err != nil {
		return nil, err
	}
	return &types.ProjectData{
		ResumeData:    doc,
		ChatHistory:   transcript,
		ResumeHistory: entries,
	}, nil
}

// MigrateLegacy upgrades pre-namespacing single-project data into a project
// named "My Resume". It is idempotent: when projects already exist, or no
// legacy keys are present, it reports success without acting. Legacy keys are
// deleted only after the new project is durably persisted.
func (m *Manager) MigrateLegacy() types.MigrationResult {
	index, err := m.Index()
	if err != nil {
		return types.MigrationResult{Success: false, Notes: []string{err.Error()}}
	}
	if len(index.Projects) > 0 {
		return types.MigrationResult{Success: true, Notes: []string{"projects already exist, skipping migration"}}
	}

	legacyDoc, docErr := m.kv.Get(storage.KeyLegacyResumeData)
	legacyHistory, histErr := m.kv.Get(storage.KeyLegacyResumeHistory)
	if errors.Is(docErr, storage.ErrKeyNotFound) && errors.Is(histErr, storage.ErrKeyNotFound) {
		return types.MigrationResult{Success: true, Notes: []string{"no legacy data found"}}
	}

	var notes []string
	doc := types.DefaultDocument()
	if docErr == nil {
		if err := json.Unmarshal(legacyDoc, &doc); err != nil {
			notes = append(notes, fmt.Sprintf("legacy document unreadable, using default: %v", err))
			doc = types.DefaultDocument()
		}
	}

	proj, err := m.Create("My Resume", &doc)
	if err != nil {
		return types.MigrationResult{Success: false, Notes: append(notes, err.Error())}
	}

	if histErr == nil {
		var entries []types.HistoryEntry
		if err := json.Unmarshal(legacyHistory, &entries); err != nil {
			notes = append(notes, fmt.Sprintf("legacy history unreadable, keeping seeded history: %v", err))
		} else if len(entries) > 0 {
			if err := m.history.Replace(proj.ID, entries); err != nil {
				return types.MigrationResult{Success: false, Notes: append(notes, err.Error())}
			}
		}
	}

	if err := m.kv.Delete(storage.KeyLegacyResumeData); err != nil {
		notes = append(notes, fmt.Sprintf("failed to remove legacy document key: %v", err))
	}
	if err := m.kv.Delete(storage.KeyLegacyResumeHistory); err != nil {
		notes = append(notes, fmt.Sprintf("failed to remove legacy history key: %v", err))
	}

	return types.MigrationResult{Success: true, DefaultProjectID: proj.ID, Notes: notes}
}

func (m *Manager) writeTranscript(id string, messages []types.ChatMessage) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode transcript for %s: %w", id, err)
	}
	if err := m.kv.Set(storage.ChatHistoryKey(id), data); err != nil {
		return fmt.Errorf("write transcript for %s: %w", id, err)
	}
	return nil
}

// deleteData removes all per-project keys; best effort, used by Delete and
// by Create's rollback path.
func (m *Manager) deleteData(id string) {
	_ = m.kv.Delete(storage.ResumeKey(id))
	_ = m.kv.Delete(storage.ChatHistoryKey(id))
	_ = m.kv.Delete(storage.ResumeHistoryKey(id))
}

func findProject(index types.ProjectsIndex, id string) int {
	if id == "" {
		return -1
	}
	for i, p := range index.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}
