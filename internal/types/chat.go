//nolint:revive // types is a standard Go package name pattern
package types

// ChatRole identifies the author of a transcript message
type ChatRole string

// Transcript roles
const (
	// RoleUser is a message authored by the human
	RoleUser ChatRole = "user"
	// RoleAssistant is a message authored by the completion service
	RoleAssistant ChatRole = "assistant"
	// RoleSystem is an editor-generated status message
	RoleSystem ChatRole = "system"
)

// ChatMessage is one turn of a project's conversation transcript.
// Messages are append-only and never mutated after creation.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// MatchResult is the structured reply expected from the completion service
// for a job-description matching request.
type MatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}
