package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/asciiman/internal/games/chase"
	"github.com/vovakirdan/asciiman/internal/platform/tui"
	"github.com/vovakirdan/asciiman/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing at the chosen difficulty.

Controls:
  Arrows/WASD/HJKL  - Move
  1-4               - Switch difficulty (restarts)
  P/Space           - Pause
  R                 - Restart
  U                 - Submit score (after game over, with --leaderboard)
  Esc/B             - Leave (after game over or while paused)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Slow ghosts, short lock-on
  medium  - Default
  hard    - Fast ghosts, long lock-on
  insane  - Fastest ghosts

Examples:
  asciiman play
  asciiman play --difficulty hard
  asciiman play --seed 42 --fps 20
  asciiman play --config ./my-chase.yaml
  asciiman play --leaderboard http://localhost:3001 --name Rex`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	profiles, err := loadProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupTUILogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := runtimeConfig(profiles)

	game, err := registry.Create(chase.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage; the game still works without it
	store := openStore()

	runErr := tui.Run(game, cfg, tuiOptions(store))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
