package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-editor/internal/chat"
	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/history"
	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/project"
	"github.com/jonathan/resume-editor/internal/storage"
)

// editor bundles everything a CLI command needs against one open store.
type editor struct {
	cfg      config.Config
	kv       *storage.BadgerStore
	history  *history.Store
	projects *project.Manager
	printer  *observability.Printer
}

// loadConfig layers flag values over the environment over an optional config file.
func loadConfig() (config.Config, error) {
	cfg := config.FromEnv()

	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	cfg = cfg.Resolved()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openEditor opens the local store and wires the project and history layers.
// Legacy single-project data is migrated on open. The caller must call close.
func openEditor() (*editor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	kv, err := storage.OpenBadger(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.DataDir, err)
	}

	hist := history.New(kv)
	projects := project.New(kv, hist)

	if result := projects.MigrateLegacy(); result.Success && result.DefaultProjectID != "" {
		fmt.Fprintf(os.Stderr, "Migrated legacy data into project %s\n", result.DefaultProjectID)
	}

	return &editor{
		cfg:      cfg,
		kv:       kv,
		history:  hist,
		projects: projects,
		printer:  observability.NewPrinter(os.Stdout),
	}, nil
}

func (e *editor) close() {
	if err := e.kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
	}
}

// orchestrator builds a chat orchestrator, or fails when no API key is set.
func (e *editor) orchestrator(ctx context.Context) (*chat.Orchestrator, func(), error) {
	if e.cfg.APIKey == "" {
		return nil, nil, &chat.CredentialMissingError{}
	}

	client, err := llm.NewGeminiClient(ctx, e.cfg.APIKey, e.cfg.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
	}
	return chat.New(client, e.projects, e.history), cleanup, nil
}

// newLocalOrchestrator builds an orchestrator without a completion client,
// for operations that never call one (import).
func newLocalOrchestrator(e *editor) *chat.Orchestrator {
	return chat.New(nil, e.projects, e.history)
}

// resolveProject returns the project named by --project, or the active one.
func (e *editor) resolveProject(projectID string) (string, error) {
	if projectID != "" {
		if _, err := e.projects.Get(projectID); err != nil {
			return "", err
		}
		return projectID, nil
	}

	active, err := e.projects.GetActive()
	if err != nil {
		return "", err
	}
	if active == nil {
		return "", fmt.Errorf("no active project; create one with 'projects create' or pass --project")
	}
	return active.ID, nil
}
