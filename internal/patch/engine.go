package patch

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// Error identifies the first failing operation of a patch batch.
// The batch is all-or-nothing: when Error is returned, the caller's document
// has not been modified.
type Error struct {
	Index  int
	Op     types.PatchOp
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("patch %d (%s %s): %s", e.Index, e.Op, e.Path, e.Reason)
}

// Apply applies an ordered patch batch to a document and returns the new
// document plus the number of operations applied. The input document is never
// mutated; later operations see the effects of earlier ones. Any failure
// aborts the whole batch with an *Error naming the failing operation.
func Apply(doc types.ResumeDocument, ops []types.PatchOperation) (types.ResumeDocument, int, error) {
	// Deep copy through the generic JSON form; all edits happen on the copy.
	root, err := doc.Generic()
	if err != nil {
		return types.ResumeDocument{}, 0, fmt.Errorf("copy document: %w", err)
	}

	for i, op := range ops {
		if err := applyOne(root, op); err != nil {
			return types.ResumeDocument{}, 0, &Error{Index: i, Op: op.Op, Path: op.Path, Reason: err.Error()}
		}
	}

	result, err := types.DocumentFromGeneric(root)
	if err != nil {
		return types.ResumeDocument{}, 0, fmt.Errorf("decode patched document: %w", err)
	}
	return result, len(ops), nil
}

// applyOne applies a single operation to the root object in place
func applyOne(root map[string]any, op types.PatchOperation) error {
	switch op.Op {
	case types.OpAdd, types.OpReplace:
		if !op.HasValue() {
			return fmt.Errorf("operation requires a value")
		}
	case types.OpRemove:
		// value, if present, is ignored
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}

	tokens, err := ParsePath(op.Path)
	if err != nil {
		return err
	}
	if tokens[len(tokens)-1].Kind == TokenAppend && op.Op != types.OpAdd {
		return fmt.Errorf("append marker is only valid for add")
	}

	var value any
	if op.Op != types.OpRemove {
		if err := json.Unmarshal(op.Value, &value); err != nil {
			return fmt.Errorf("value is not valid JSON: %v", err)
		}
	}

	updated, err := applyAt(root, tokens, op.Op, value)
	if err != nil {
		return err
	}
	// The root container is always a map, so the top-level write-back
	// cannot change its identity.
	if _, ok := updated.(map[string]any); !ok {
		return fmt.Errorf("document root must remain an object")
	}
	return nil
}

// applyAt recursively descends the token chain and performs the operation at
// the final token. It returns the (possibly replaced) node so parents can
// write modified slices back into their containers.
func applyAt(node any, tokens []Token, op types.PatchOp, value any) (any, error) {
	token := tokens[0]
	if len(tokens) == 1 {
		return applyFinal(node, token, op, value)
	}

	child, err := resolveChild(node, token)
	if err != nil {
		return nil, err
	}

	newChild, err := applyAt(child, tokens[1:], op, value)
	if err != nil {
		return nil, err
	}
	return writeChild(node, token, newChild)
}

// resolveChild fetches the container addressed by an intermediate token
func resolveChild(node any, token Token) (any, error) {
	switch container := node.(type) {
	case map[string]any:
		if token.Kind != TokenKey {
			return nil, fmt.Errorf("segment %q addresses an index but target is an object", token)
		}
		child, ok := container[token.Key]
		if !ok {
			return nil, fmt.Errorf("missing intermediate field %q", token.Key)
		}
		return child, nil
	case []any:
		if token.Kind != TokenIndex {
			return nil, fmt.Errorf("segment %q addresses a key but target is an array", token)
		}
		if token.Index >= len(container) {
			return nil, fmt.Errorf("index %d out of range (array length %d)", token.Index, len(container))
		}
		return container[token.Index], nil
	default:
		return nil, fmt.Errorf("segment %q addresses into a non-container value", token)
	}
}

// writeChild stores a (possibly replaced) child back into its parent container
func writeChild(node any, token Token, child any) (any, error) {
	switch container := node.(type) {
	case map[string]any:
		container[token.Key] = child
		return container, nil
	case []any:
		container[token.Index] = child
		return container, nil
	default:
		return nil, fmt.Errorf("segment %q addresses into a non-container value", token)
	}
}

// applyFinal performs the operation at the final path token
func applyFinal(node any, token Token, op types.PatchOp, value any) (any, error) {
	switch op {
	case types.OpAdd:
		return applyAdd(node, token, value)
	case types.OpRemove:
		return applyRemove(node, token)
	case types.OpReplace:
		return applyReplace(node, token, value)
	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}

func applyAdd(node any, token Token, value any) (any, error) {
	switch container := node.(type) {
	case map[string]any:
		if token.Kind != TokenKey {
			return nil, fmt.Errorf("cannot add at %q: target is an object", token)
		}
		container[token.Key] = value
		return container, nil
	case []any:
		switch token.Kind {
		case TokenAppend:
			return append(container, value), nil
		case TokenIndex:
			if token.Index > len(container) {
				return nil, fmt.Errorf("index %d out of range for insert (array length %d)", token.Index, len(container))
			}
			out := make([]any, 0, len(container)+1)
			out = append(out, container[:token.Index]...)
			out = append(out, value)
			out = append(out, container[token.Index:]...)
			return out, nil
		default:
			return nil, fmt.Errorf("cannot add at key %q: target is an array", token.Key)
		}
	case string:
		// The skills fields are free-text strings; an append onto one
		// concatenates comma-separated rather than failing.
		if token.Kind != TokenAppend {
			return nil, fmt.Errorf("cannot add at %q: target is a string", token)
		}
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot append a non-string value to a string field")
		}
		if container == "" {
			return s, nil
		}
		return container + ", " + s, nil
	default:
		return nil, fmt.Errorf("cannot add at %q: target is not a container", token)
	}
}

func applyRemove(node any, token Token) (any, error) {
	switch container := node.(type) {
	case map[string]any:
		if token.Kind != TokenKey {
			return nil, fmt.Errorf("cannot remove at %q: target is an object", token)
		}
		if _, ok := container[token.Key]; !ok {
			return nil, fmt.Errorf("field %q does not exist", token.Key)
		}
		delete(container, token.Key)
		return container, nil
	case []any:
		if token.Kind != TokenIndex {
			return nil, fmt.Errorf("cannot remove at %q: target is an array", token)
		}
		if token.Index >= len(container) {
			return nil, fmt.Errorf("index %d out of range (array length %d)", token.Index, len(container))
		}
		out := make([]any, 0, len(container)-1)
		out = append(out, container[:token.Index]...)
		out = append(out, container[token.Index+1:]...)
		return out, nil
	default:
		return nil, fmt.Errorf("cannot remove at %q: target is not a container", token)
	}
}

func applyReplace(node any, token Token, value any) (any, error) {
	switch container := node.(type) {
	case map[string]any:
		if token.Kind != TokenKey {
			return nil, fmt.Errorf("cannot replace at %q: target is an object", token)
		}
		if _, ok := container[token.Key]; !ok {
			return nil, fmt.Errorf("field %q does not exist", token.Key)
		}
		container[token.Key] = value
		return container, nil
	case []any:
		if token.Kind != TokenIndex {
			return nil, fmt.Errorf("cannot replace at %q: target is an array", token)
		}
		if token.Index >= len(container) {
			return nil, fmt.Errorf("index %d out of range (array length %d)", token.Index, len(container))
		}
		container[token.Index] = value
		return container, nil
	default:
		return nil, fmt.Errorf("cannot replace at %q: target is not a container", token)
	}
}
