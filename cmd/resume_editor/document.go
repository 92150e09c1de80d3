package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/validation"
)

var (
	documentProjectID  string
	validateSchemaPath string
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a document against the required resume shape",
	Long:  "Validate the project's document, or a JSON file when one is given. With --schema the file is checked against that JSON Schema instead of the built-in shape. Reports every violation rather than stopping at the first.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the project's document with a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the project's document as JSON to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var matchCmd = &cobra.Command{
	Use:   "match <job-description-file>",
	Short: "Compare the document against a job description",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

var extractCmd = &cobra.Command{
	Use:   "extract <text-file>",
	Short: "Build the project's document from a plain-text resume",
	Long:  "Extract a structured resume from free-form text and import it into the project, replacing the current document.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	for _, cmd := range []*cobra.Command{validateCmd, importCmd, exportCmd, matchCmd, extractCmd} {
		cmd.Flags().StringVar(&documentProjectID, "project", "", "Project ID (defaults to the active project)")
		rootCmd.AddCommand(cmd)
	}
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Validate the file against this JSON Schema instead of the built-in shape")
}

func runValidate(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	var result validation.Result
	switch {
	case validateSchemaPath != "":
		if len(args) != 1 {
			return fmt.Errorf("--schema requires a JSON file argument")
		}
		result = schemaResult(schemas.ValidateJSON(validateSchemaPath, args[0]))
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		result = validation.ValidateBytes(data)
	default:
		projectID, err := ed.resolveProject(documentProjectID)
		if err != nil {
			return err
		}
		doc, err := ed.projects.Document(projectID)
		if err != nil {
			return err
		}
		result = validation.ValidateDocument(doc)
	}

	ed.printer.PrintValidationReport(result)
	if !result.IsValid {
		return fmt.Errorf("document has %d problem(s)", len(result.Errors))
	}
	return nil
}

// schemaResult flattens a schema validation error into a report the printer understands.
func schemaResult(err error) validation.Result {
	if err == nil {
		return validation.Result{IsValid: true}
	}
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		msgs := make([]string, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return validation.Result{IsValid: false, Errors: msgs}
	}
	return validation.Result{IsValid: false, Errors: []string{err.Error()}}
}

func runImport(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(documentProjectID)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	// Import needs no completion client, so build the orchestrator directly.
	orch := newLocalOrchestrator(ed)
	if _, err := orch.ImportDocument(projectID, data); err != nil {
		return err
	}

	fmt.Printf("Imported %s into project %s\n", args[0], projectID)
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(documentProjectID)
	if err != nil {
		return err
	}

	doc, err := ed.projects.Document(projectID)
	if err != nil {
		return err
	}
	data, err := doc.Canonical()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	fmt.Printf("Exported document to %s\n", args[0])
	return nil
}

func runExtract(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(documentProjectID)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ctx := context.Background()
	orch, cleanup, err := ed.orchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := orch.ExtractDocument(ctx, string(text))
	if err != nil {
		return err
	}
	data, err := doc.Canonical()
	if err != nil {
		return err
	}
	if _, err := orch.ImportDocument(projectID, data); err != nil {
		return err
	}

	fmt.Printf("Extracted %s into project %s\n", args[0], projectID)
	return nil
}

func runMatch(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(documentProjectID)
	if err != nil {
		return err
	}

	jobDescription, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	ctx := context.Background()
	orch, cleanup, err := ed.orchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	match, err := orch.MatchJob(ctx, projectID, string(jobDescription))
	if err != nil {
		return err
	}

	ed.printer.PrintMatchResult(match)
	return nil
}
