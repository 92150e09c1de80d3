package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyProjectID string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and revert document history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List document snapshots",
	RunE:  runHistoryList,
}

var historyRevertCmd = &cobra.Command{
	Use:   "revert <timestamp>",
	Short: "Make an earlier snapshot the active document again",
	Long:  "Re-mark the snapshot with the given timestamp as the active document. No history entries are deleted, so the revert itself can be reverted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRevert,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyProjectID, "project", "", "Project ID (defaults to the active project)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRevertCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(historyProjectID)
	if err != nil {
		return err
	}

	entries, err := ed.history.Entries(projectID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}
	ed.printer.PrintHistory(entries)
	return nil
}

func runHistoryRevert(_ *cobra.Command, args []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	projectID, err := ed.resolveProject(historyProjectID)
	if err != nil {
		return err
	}

	if err := ed.history.Revert(projectID, args[0]); err != nil {
		return err
	}

	fmt.Printf("Reverted to snapshot %s\n", args[0])
	return nil
}
