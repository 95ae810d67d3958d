package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruit-catch/internal/platform/web"
	"github.com/vovakirdan/fruit-catch/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the leaderboard as JSON over HTTP",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /api/games                   - Games with aggregate stats
  GET /api/games/{id}/scores?limit - Top scores, highest first
  GET /api/games/{id}/best         - Best score

Examples:
  fruitcatch web
  fruitcatch web --addr 127.0.0.1:9000 --db ./scores.db`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("fruitcatch-web", os.Stderr)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(flagWebAddr, store, logger)
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
