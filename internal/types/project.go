//nolint:revive // types is a standard Go package name pattern
package types

// Project is the isolation boundary for one resume, its conversation
// transcript, and its version history.
type Project struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	LastChatMessage string `json:"lastChatMessage,omitempty"`
}

// ProjectsIndex is the persisted registry of all projects plus the active marker
type ProjectsIndex struct {
	Projects        []Project `json:"projects"`
	ActiveProjectID string    `json:"activeProjectId,omitempty"`
}

// ProjectData bundles everything a project owns
type ProjectData struct {
	ResumeData    ResumeDocument `json:"resumeData"`
	ChatHistory   []ChatMessage  `json:"chatHistory"`
	ResumeHistory []HistoryEntry `json:"resumeHistory"`
}

// MigrationResult reports the outcome of a legacy data migration
type MigrationResult struct {
	Success          bool     `json:"success"`
	DefaultProjectID string   `json:"defaultProjectId,omitempty"`
	Notes            []string `json:"notes,omitempty"`
}
