//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditResponse_Unmarshaling(t *testing.T) {
	jsonInput := `{
		"patches": [
			{"op": "replace", "path": "/contact/phone", "value": "555-1234"},
			{"op": "add", "path": "/skills/languages/-", "value": "Go"},
			{"op": "remove", "path": "/experience/0"}
		],
		"message": "Updated your phone number."
	}`

	var resp EditResponse
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &resp))

	require.Len(t, resp.Patches, 3)
	assert.Equal(t, OpReplace, resp.Patches[0].Op)
	assert.Equal(t, "/contact/phone", resp.Patches[0].Path)
	assert.True(t, resp.Patches[0].HasValue())
	assert.Equal(t, OpAdd, resp.Patches[1].Op)
	assert.False(t, resp.Patches[2].HasValue())
	assert.Equal(t, "Updated your phone number.", resp.Message)
}

func TestEditResponse_EmptyPatches(t *testing.T) {
	var resp EditResponse
	require.NoError(t, json.Unmarshal([]byte(`{"patches": [], "message": "Just chatting."}`), &resp))
	assert.Empty(t, resp.Patches)
}

func TestPatchOperation_ValuePreservesArbitraryJSON(t *testing.T) {
	jsonInput := `{"op": "add", "path": "/projects/-", "value": {"name": "side project", "isPersonal": true}}`

	var op PatchOperation
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &op))

	var v map[string]any
	require.NoError(t, json.Unmarshal(op.Value, &v))
	assert.Equal(t, true, v["isPersonal"])
}
