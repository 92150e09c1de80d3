package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var chatProjectID string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Edit the document conversationally",
	Long:  "Send a natural-language edit request. The reply's patches are applied atomically to the document and recorded as a new history snapshot.",
	Args:  cobra.ExactArgs(1),
	RunE:  runChat,
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Show the project's conversation transcript",
	RunE:  runTranscript,
}

func init() {
	chatCmd.Flags().StringVar(&chatProjectID, "project", "", "Project ID (defaults to the active project)")
	transcriptCmd.Flags().StringVar(&chatProjectID, "project", "", "Project ID (defaults to the active project)")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(transcriptCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(chatProjectID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	orch, cleanup, err := ed.orchestrator(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := orch.SendMessage(ctx, projectID, args[0])
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if ed.cfg.Verbose && result.Applied {
		ed.printer.PrintPatchSummary(result.Patches)
	}
	return nil
}

func runTranscript(_ *cobra.Command, _ []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(chatProjectID)
	if err != nil {
		return err
	}

	transcript, err := ed.projects.Transcript(projectID)
	if err != nil {
		return err
	}

	if len(transcript) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}
	for _, msg := range transcript {
		fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
	}
	return nil
}
