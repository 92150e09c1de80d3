package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for managing resume projects, chat-driven editing, and document history.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ed, err := openEditor()
	if err != nil {
		return err
	}
	defer ed.close()

	port := ed.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	gcInterval, err := time.ParseDuration(ed.cfg.GCInterval)
	if err != nil {
		return fmt.Errorf("invalid gc_interval %q: %w", ed.cfg.GCInterval, err)
	}

	var client llm.Client
	if ed.cfg.APIKey != "" {
		gemini, err := llm.NewGeminiClient(context.Background(), ed.cfg.APIKey, ed.cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to create completion client: %w", err)
		}
		defer func() { _ = gemini.Close() }()
		client = gemini
	}

	srv, err := server.New(server.Config{
		Port:    port,
		Store:   ed.kv,
		Client:  client,
		Verbose: ed.cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		err := ed.kv.RunGC(ctx, gcInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
