package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/asciiman/internal/leaderboard"
	"github.com/vovakirdan/asciiman/internal/storage"
)

var (
	flagLBAddr   string
	flagLBDBPath string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Leaderboard service commands",
}

var leaderboardServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the leaderboard HTTP service",
	Long: `Serve the global leaderboard over HTTP.

Endpoints:
  GET  /api/health          - Liveness check
  GET  /api/scores?mode=m   - Top 10 scores, optionally for one mode
  POST /api/scores          - Submit {name, score, time, mode}

Examples:
  asciiman leaderboard serve
  asciiman leaderboard serve --addr :8080 --db ./leaderboard.db`,
	Args: cobra.NoArgs,
	Run:  runLeaderboardServe,
}

func init() {
	defaults := leaderboard.DefaultServerConfig()
	leaderboardServeCmd.Flags().StringVar(&flagLBAddr, "addr", defaults.Address, "HTTP listen address")
	leaderboardServeCmd.Flags().StringVar(&flagLBDBPath, "db", defaults.DBPath, "Path to leaderboard database")
	leaderboardCmd.AddCommand(leaderboardServeCmd)
}

func runLeaderboardServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "leaderboard",
	})

	store, err := storage.Open(flagLBDBPath)
	if err != nil {
		logger.Error("could not open leaderboard database", "error", err)
		os.Exit(1)
	}

	server := leaderboard.NewServer(store, logger)
	fmt.Printf("Leaderboard listening on %s\n", flagLBAddr)

	runErr := server.ListenAndServe(flagLBAddr)
	store.Close()
	if runErr != nil {
		logger.Error("server error", "error", runErr)
		os.Exit(1)
	}
}
