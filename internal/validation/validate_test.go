package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

func TestValidate_EmptyDocument(t *testing.T) {
	result := Validate(map[string]any{})

	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 7)
	assert.Contains(t, result.Errors[0], `"name"`)
	assert.Contains(t, result.Errors[6], `"projects"`)
}

func TestValidate_NilDocument(t *testing.T) {
	result := Validate(nil)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
}

func TestValidate_DefaultDocumentIsValid(t *testing.T) {
	result := ValidateDocument(types.DefaultDocument())
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_BadEmailIsTheOnlyError(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Contact.Email = "not-an-email"

	result := ValidateDocument(doc)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not-an-email")
	assert.Contains(t, result.Errors[0], "email")
}

func TestValidate_EmptyContactFields(t *testing.T) {
	doc := types.DefaultDocument()
	doc.Contact.Email = ""
	doc.Contact.Phone = ""

	result := ValidateDocument(doc)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "email")
	assert.Contains(t, result.Errors[1], "phone")
}

func TestValidate_WrongFieldTypes(t *testing.T) {
	doc := map[string]any{
		"name":       42,
		"title":      "Engineer",
		"contact":    map[string]any{"email": "a@b.co", "phone": "1", "github": "gh"},
		"education":  "not an array",
		"skills":     map[string]any{"languages": "Go", "frameworks": "", "databases": "", "sourceManagement": "", "english": "", "others": 3},
		"experience": []any{},
		"projects":   []any{},
	}

	result := Validate(doc)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, `field "name" must be a string`)
	assert.Contains(t, result.Errors, `field "education" must be an array`)
	assert.Contains(t, result.Errors, `skills field "others" must be a string`)
}

func TestValidate_ExperienceElementChecks(t *testing.T) {
	doc := map[string]any{
		"name":      "a",
		"title":     "b",
		"contact":   map[string]any{"email": "a@b.co", "phone": "1", "github": "gh"},
		"education": []any{},
		"skills": map[string]any{
			"languages": "", "frameworks": "", "databases": "",
			"sourceManagement": "", "english": "", "others": "",
		},
		"experience": []any{
			map[string]any{
				"role":             "Engineer",
				"company":          "Acme",
				"duration":         "2020",
				"techStack":        "Go",
				"responsibilities": []any{"shipped things", 7},
			},
		},
		"projects": []any{
			map[string]any{
				"name":             "tool",
				"techStack":        "Go",
				"isPersonal":       "yes",
				"responsibilities": []any{},
			},
		},
	}

	result := Validate(doc)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, `experience[0] field "responsibilities" element 1 must be a string`)
	assert.Contains(t, result.Errors, `projects[0] field "isPersonal" must be a boolean`)
}

func TestValidateBytes_NotJSON(t *testing.T) {
	result := ValidateBytes([]byte("this is not json"))
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "not valid JSON")
}

func TestValidateBytes_ValidDocument(t *testing.T) {
	data, err := types.DefaultDocument().Canonical()
	require.NoError(t, err)

	result := ValidateBytes(data)
	assert.True(t, result.IsValid)
}
