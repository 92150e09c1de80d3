package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("editing.json", "edit-system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "JSON Patch")
	assert.Contains(t, prompt, "{{.Document}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("editing.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("editing.json", "job-match")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Current CV data:\n{{.Document}}\n\nUser request: {{.Message}}"
	data := map[string]string{
		"Document": "{}",
		"Message":  "add Go to my skills",
	}

	result := Format(template, data)
	assert.Equal(t, "Current CV data:\n{}\n\nUser request: add Go to my skills", result)
}

func TestFormat_MissingPlaceholder(t *testing.T) {
	template := "Job description:\n{{.JobDescription}}"

	result := Format(template, map[string]string{"Other": "value"})
	assert.Equal(t, template, result)
}

func TestAllEditingPromptsLoad(t *testing.T) {
	ClearCache()

	for _, key := range []string{"edit-system", "job-match", "extract-resume"} {
		prompt, err := Get("editing.json", key)
		require.NoError(t, err, "prompt %s", key)
		assert.NotEmpty(t, prompt)
	}
}
