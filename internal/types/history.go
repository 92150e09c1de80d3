//nolint:revive // types is a standard Go package name pattern
package types

// HistoryEntry is one committed document snapshot with metadata.
// Snapshots are full copies, never diffs; entries are append-only and the
// single IsLatest marker identifies the project's live document.
type HistoryEntry struct {
	Snapshot  ResumeDocument `json:"snapshot"`
	Timestamp string         `json:"timestamp"`
	Message   string         `json:"message"`
	IsLatest  bool           `json:"isLatest"`
}
