package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func sampleDocument() types.ResumeDocument {
	doc := types.DefaultDocument()
	doc.Skills.Languages = "Python"
	doc.Experience = []types.Experience{
		{
			Role:             "Backend Engineer",
			Company:          "Acme",
			Duration:         "2021 - 2023",
			TechStack:        "Go",
			Responsibilities: []string{"Built the billing API", "Ran on-call"},
		},
	}
	return doc
}

func TestApply_EmptyBatchIsNoOp(t *testing.T) {
	doc := sampleDocument()

	result, applied, err := Apply(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, doc, result)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	doc := sampleDocument()
	before := sampleDocument()

	_, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpReplace, Path: "/experience/0/role", Value: raw(t, "Staff Engineer")},
	})
	require.NoError(t, err)
	assert.Equal(t, before, doc)
}

func TestApply_ReplaceAndStringAppend(t *testing.T) {
	doc := sampleDocument()

	result, applied, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpReplace, Path: "/contact/phone", Value: raw(t, "555-1234")},
		{Op: types.OpAdd, Path: "/skills/languages/-", Value: raw(t, "Go")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "555-1234", result.Contact.Phone)
	assert.Equal(t, "Python, Go", result.Skills.Languages)
}

func TestApply_StringAppendOntoEmptyField(t *testing.T) {
	doc := sampleDocument()
	doc.Skills.Frameworks = ""

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/skills/frameworks/-", Value: raw(t, "Gin")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Gin", result.Skills.Frameworks)
}

func TestApply_ArrayAppend(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/experience/0/responsibilities/-", Value: raw(t, "Mentored juniors")},
	})
	require.NoError(t, err)
	require.Len(t, result.Experience[0].Responsibilities, 3)
	assert.Equal(t, "Mentored juniors", result.Experience[0].Responsibilities[2])
}

func TestApply_ArrayInsertShiftsElements(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/experience/0/responsibilities/0", Value: raw(t, "Led the team")},
	})
	require.NoError(t, err)
	require.Len(t, result.Experience[0].Responsibilities, 3)
	assert.Equal(t, "Led the team", result.Experience[0].Responsibilities[0])
	assert.Equal(t, "Built the billing API", result.Experience[0].Responsibilities[1])
}

func TestApply_AddWholeEntry(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/education/-", Value: raw(t, map[string]any{
			"institution": "MIT",
			"degree":      "M.Sc.",
			"duration":    "2023 - 2025",
			"details":     "",
		})},
	})
	require.NoError(t, err)
	require.Len(t, result.Education, 2)
	assert.Equal(t, "MIT", result.Education[1].Institution)
}

func TestApply_AddAndRemoveRoundTrip(t *testing.T) {
	doc := sampleDocument()

	added, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/experience/0/responsibilities/2", Value: raw(t, "temp bullet")},
	})
	require.NoError(t, err)

	restored, _, err := Apply(added, []types.PatchOperation{
		{Op: types.OpRemove, Path: "/experience/0/responsibilities/2"},
	})
	require.NoError(t, err)
	assert.Equal(t, doc, restored)
}

func TestApply_RemoveArrayElement(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpRemove, Path: "/experience/0"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Experience)
}

func TestApply_LaterPatchesSeeEarlierEffects(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpAdd, Path: "/projects/-", Value: raw(t, map[string]any{
			"name": "resume-editor", "techStack": "Go", "isPersonal": true, "responsibilities": []string{},
		})},
		{Op: types.OpAdd, Path: "/projects/0/responsibilities/-", Value: raw(t, "Designed the patch engine")},
	})
	require.NoError(t, err)
	require.Len(t, result.Projects, 1)
	require.Len(t, result.Projects[0].Responsibilities, 1)
}

func TestApply_FailureIsAllOrNothing(t *testing.T) {
	doc := sampleDocument()
	before := sampleDocument()

	_, applied, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpReplace, Path: "/contact/phone", Value: raw(t, "555-1234")},
		{Op: types.OpReplace, Path: "/contact/fax", Value: raw(t, "nope")},
	})
	require.Error(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, before, doc)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Index)
	assert.Contains(t, perr.Reason, `"fax"`)
}

func TestApply_Failures(t *testing.T) {
	tests := []struct {
		name string
		op   types.PatchOperation
	}{
		{"unknown op", types.PatchOperation{Op: "move", Path: "/name", Value: json.RawMessage(`"x"`)}},
		{"add without value", types.PatchOperation{Op: types.OpAdd, Path: "/name"}},
		{"replace without value", types.PatchOperation{Op: types.OpReplace, Path: "/name"}},
		{"replace missing key", types.PatchOperation{Op: types.OpReplace, Path: "/salary", Value: json.RawMessage(`1`)}},
		{"remove missing key", types.PatchOperation{Op: types.OpRemove, Path: "/salary"}},
		{"index out of range", types.PatchOperation{Op: types.OpReplace, Path: "/experience/5/role", Value: json.RawMessage(`"x"`)}},
		{"insert past end", types.PatchOperation{Op: types.OpAdd, Path: "/experience/3", Value: json.RawMessage(`{}`)}},
		{"missing intermediate", types.PatchOperation{Op: types.OpReplace, Path: "/nothing/here", Value: json.RawMessage(`"x"`)}},
		{"append on remove", types.PatchOperation{Op: types.OpRemove, Path: "/experience/-"}},
		{"append on replace", types.PatchOperation{Op: types.OpReplace, Path: "/experience/-", Value: json.RawMessage(`{}`)}},
		{"non-string append to string", types.PatchOperation{Op: types.OpAdd, Path: "/skills/languages/-", Value: json.RawMessage(`42`)}},
		{"bad path grammar", types.PatchOperation{Op: types.OpAdd, Path: "name", Value: json.RawMessage(`"x"`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			before := sampleDocument()

			_, _, err := Apply(doc, []types.PatchOperation{tt.op})
			require.Error(t, err)
			assert.Equal(t, before, doc)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 0, perr.Index)
		})
	}
}

func TestApply_ValueIgnoredForRemove(t *testing.T) {
	doc := sampleDocument()

	result, _, err := Apply(doc, []types.PatchOperation{
		{Op: types.OpRemove, Path: "/experience/0/responsibilities/1", Value: json.RawMessage(`"ignored"`)},
	})
	require.NoError(t, err)
	require.Len(t, result.Experience[0].Responsibilities, 1)
}
