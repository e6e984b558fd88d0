// asciiman is a terminal maze chase game: clear the board of pickups while
// four ghosts hunt you down.
//
// Usage:
//
//	asciiman play                 - Play a game
//	asciiman menu                 - Pick a difficulty interactively
//	asciiman list                 - List difficulty profiles
//	asciiman scores               - Show local records and the global top 10
//	asciiman serve                - Start SSH server for remote play
//	asciiman leaderboard serve    - Start the leaderboard HTTP service
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 10)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.asciiman/scores.db)
//	--config <path>        - Difficulty profiles YAML
//	--difficulty <mode>    - easy, medium, hard or insane
//	--leaderboard <url>    - Leaderboard service base URL
//	--name <name>          - Name offered when submitting scores
//	--log-file <path>      - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/asciiman/internal/games/chase"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagDifficulty  string
	flagLeaderboard string
	flagName        string
	flagLogFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asciiman",
	Short: "Asciiman - a maze chase in your terminal",
	Long: `Asciiman is a terminal maze chase. Eat every pickup on the board
before the ghosts catch you. Special pickups make you invincible for
a few seconds and let you send ghosts back home.

Available commands:
  play         - Play a game directly
  menu         - Interactive difficulty picker
  list         - Show difficulty profiles
  scores       - View local records and the global leaderboard
  serve        - Start SSH server for remote play
  leaderboard  - Run the leaderboard service

Examples:
  asciiman play --difficulty hard
  asciiman menu --leaderboard http://localhost:3001
  asciiman serve --ssh :2222
  asciiman leaderboard serve --addr :3001`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.asciiman/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom difficulty profiles YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard, insane")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard service URL (empty disables submission)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Name offered when submitting scores (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(leaderboardCmd)
}
