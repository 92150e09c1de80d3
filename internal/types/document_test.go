//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument_HasRequiredFields(t *testing.T) {
	doc := DefaultDocument()

	assert.NotEmpty(t, doc.Name)
	assert.NotEmpty(t, doc.Contact.Email)
	assert.NotEmpty(t, doc.Contact.Phone)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Projects)
}

func TestResumeDocument_GenericRoundTrip(t *testing.T) {
	doc := DefaultDocument()
	doc.Experience = []Experience{
		{
			Role:             "Backend Engineer",
			Company:          "Acme",
			Duration:         "2021 - 2023",
			TechStack:        "Go, PostgreSQL",
			Responsibilities: []string{"Built the billing API"},
		},
	}

	m, err := doc.Generic()
	require.NoError(t, err)

	back, err := DocumentFromGeneric(m)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestResumeDocument_CanonicalUsesStoredFieldNames(t *testing.T) {
	doc := DefaultDocument()
	data, err := doc.Canonical()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"sourceManagement"`)
	assert.Contains(t, out, `"contact"`)
	assert.NotContains(t, out, `"SourceManagement"`)
}

func TestResumeProject_IsPersonalRoundTrip(t *testing.T) {
	jsonInput := `{
		"name": "resume-editor",
		"techStack": "Go",
		"isPersonal": true,
		"responsibilities": ["Designed the patch engine"]
	}`

	var p ResumeProject
	require.NoError(t, json.Unmarshal([]byte(jsonInput), &p))
	assert.True(t, p.IsPersonal)
	assert.Len(t, p.Responsibilities, 1)
}
