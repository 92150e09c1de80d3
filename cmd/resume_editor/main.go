// Package main provides the entry point for the AI-assisted resume editor.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_editor",
	Short: "AI-assisted resume editor",
	Long:  "Resume Editor manages resume projects in a local database and edits them conversationally: chat requests become JSON patches that are validated, applied atomically, and recorded as revertable history snapshots.",
}

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding the local database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
