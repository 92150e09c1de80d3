package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

func resetFlags() {
	flagConfig = ""
	flagDataDir = ""
	flagVerbose = false
	chatProjectID = ""
	historyProjectID = ""
	documentProjectID = ""
	validateSchemaPath = ""
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	resetFlags()
	flagDataDir = "/tmp/custom-dir"
	flagVerbose = true
	defer resetFlags()

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom-dir", cfg.DataDir)
	assert.True(t, cfg.Verbose)
}

func TestProjectsCreateAndList(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()

	err := runCommand(t, "projects", "create", "CLI Project", "--data-dir", dir)
	require.NoError(t, err)

	err = runCommand(t, "projects", "list", "--data-dir", dir)
	require.NoError(t, err)
}

func TestProjectsCreate_DuplicateFails(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()

	require.NoError(t, runCommand(t, "projects", "create", "Dup", "--data-dir", dir))
	err := runCommand(t, "projects", "create", "dup", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestValidateFile(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	doc := types.DefaultDocument()
	data, err := doc.Canonical()
	require.NoError(t, err)

	file := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(file, data, 0644))

	require.NoError(t, runCommand(t, "validate", file, "--data-dir", dataDir))
}

func TestValidateFile_Invalid(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	file := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"name": "only"}`), 0644))

	err := runCommand(t, "validate", file, "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem")
}

func TestValidateFile_ExternalSchema(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	schemaFile := filepath.Join(dir, "resume.schema.json")
	require.NoError(t, os.WriteFile(schemaFile, []byte(schemas.ResumeSchema()), 0644))

	doc := types.DefaultDocument()
	data, err := doc.Canonical()
	require.NoError(t, err)
	file := filepath.Join(dir, "resume.json")
	require.NoError(t, os.WriteFile(file, data, 0644))

	require.NoError(t, runCommand(t, "validate", file, "--schema", schemaFile, "--data-dir", dataDir))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "only"}`), 0644))
	err = runCommand(t, "validate", bad, "--schema", schemaFile, "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem")
}

func TestValidateFile_SchemaRequiresFile(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()

	err := runCommand(t, "validate", "--schema", filepath.Join(dir, "s.json"), "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--schema requires")
}

func TestExportAndImportRoundTrip(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")

	require.NoError(t, runCommand(t, "projects", "create", "Round Trip", "--data-dir", dataDir))

	file := filepath.Join(dir, "exported.json")
	require.NoError(t, runCommand(t, "export", file, "--data-dir", dataDir))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Your Name")

	require.NoError(t, runCommand(t, "import", file, "--data-dir", dataDir))
}

func TestChat_WithoutAPIKey(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	t.Setenv("GEMINI_API_KEY", "")

	require.NoError(t, runCommand(t, "projects", "create", "Chat", "--data-dir", dir))

	err := runCommand(t, "chat", "add Go to my skills", "--data-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestExtract_WithoutAPIKey(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	t.Setenv("GEMINI_API_KEY", "")

	file := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(file, []byte("Jane Doe, software engineer."), 0644))

	require.NoError(t, runCommand(t, "projects", "create", "Extract", "--data-dir", dataDir))

	err := runCommand(t, "extract", file, "--data-dir", dataDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestHistoryList_SeedEntry(t *testing.T) {
	resetFlags()
	defer resetFlags()
	dir := t.TempDir()

	require.NoError(t, runCommand(t, "projects", "create", "Hist", "--data-dir", dir))
	require.NoError(t, runCommand(t, "history", "list", "--data-dir", dir))
}
