package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asciiman/internal/config"
	"github.com/vovakirdan/asciiman/internal/storage"
)

var flagScoresMode string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show local records and the global leaderboard",
	Long: `Display the last and best result per difficulty from the local
database. With --leaderboard, also show the global top 10.

Examples:
  asciiman scores
  asciiman scores --mode hard
  asciiman scores --leaderboard http://localhost:3001`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show this difficulty")
}

func runScores(_ *cobra.Command, _ []string) {
	mode := strings.ToLower(strings.TrimSpace(flagScoresMode))
	if mode != "" && !config.IsPreset(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagScoresMode)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	records, err := store.AllRecords()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving records: %v\n", err)
		return
	}

	fmt.Println("Local records")
	fmt.Println()
	fmt.Printf("  %-8s  %-14s  %s\n", "Mode", "Best", "Last")
	fmt.Printf("  %-8s  %-14s  %s\n", "----", "----", "----")
	shown := 0
	for _, r := range records {
		if mode != "" && r.Mode != mode {
			continue
		}
		shown++
		fmt.Printf("  %-8s  %-14s  %s\n", r.Mode,
			fmt.Sprintf("%d (%s)", r.BestScore, clock(r.BestTime)),
			fmt.Sprintf("%d (%s)", r.LastScore, clock(r.LastTime)))
	}
	if shown == 0 {
		fmt.Println("  No games recorded yet.")
	}

	client := leaderboardClient()
	if client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := client.Top(ctx, mode)
	fmt.Println()
	fmt.Println("Global top 10")
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not reach leaderboard: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("  No scores submitted yet.")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-7s  %-6s  %s\n", "Rank", "Name", "Score", "Time", "Mode")
	fmt.Printf("  %-4s  %-20s  %-7s  %-6s  %s\n", "----", "----", "-----", "----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-7d  %-6s  %s\n", i+1, e.Name, e.Score, clock(e.Time), e.Mode)
	}
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
