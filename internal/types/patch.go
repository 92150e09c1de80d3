//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// PatchOp enumerates the supported patch operation kinds
type PatchOp string

// Supported patch operations
const (
	// OpAdd inserts a value at a path (array index, array append, or object key)
	OpAdd PatchOp = "add"
	// OpRemove deletes the value at an existing path
	OpRemove PatchOp = "remove"
	// OpReplace overwrites the value at an existing path
	OpReplace PatchOp = "replace"
)

// PatchOperation is one atomic edit instruction targeting a path within a document.
// Value is kept raw so the engine can insert any JSON value without knowing its shape;
// it must be present for add/replace and is ignored for remove.
type PatchOperation struct {
	Op    PatchOp         `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// HasValue reports whether the operation carries a value
func (p PatchOperation) HasValue() bool {
	return len(p.Value) > 0
}

// EditResponse is the structured reply expected from the completion service
// for an editing turn: a patch set plus a user-facing message.
type EditResponse struct {
	Patches []PatchOperation `json:"patches"`
	Message string           `json:"message"`
}
