package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/asciiman/internal/config"
	"github.com/vovakirdan/asciiman/internal/core"
	"github.com/vovakirdan/asciiman/internal/games/chase"
	"github.com/vovakirdan/asciiman/internal/leaderboard"
	"github.com/vovakirdan/asciiman/internal/platform/tui"
	"github.com/vovakirdan/asciiman/internal/storage"
)

// loadProfiles reads the difficulty profiles and installs them for new games.
func loadProfiles() (config.ChaseConfig, error) {
	cfg, err := config.LoadChase(flagConfig)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Profiles) == 0 {
		return cfg, fmt.Errorf("config: no difficulty profiles defined")
	}
	chase.SetConfig(cfg)
	return cfg, nil
}

// runtimeConfig builds the game config from flags and the terminal size.
func runtimeConfig(profiles config.ChaseConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	difficulty := flagDifficulty
	if difficulty == "" {
		difficulty = profiles.Default
	}
	if _, err := profiles.Profile(difficulty); err != nil {
		difficulty = profiles.ProfileOrDefault(difficulty).Name
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: difficulty,
	}
}

// setupTUILogger sends TUI logs to --log-file, or drops them.
// The returned function closes the file.
func setupTUILogger() (func(), error) {
	if flagLogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	tui.SetLogger(log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "asciiman",
	}))
	return func() {
		tui.SetLogger(nil)
		f.Close()
	}, nil
}

// openStore opens the scores database, warning instead of failing.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// leaderboardClient returns a client when --leaderboard is set.
func leaderboardClient() *leaderboard.Client {
	if flagLeaderboard == "" {
		return nil
	}
	return leaderboard.NewClient(flagLeaderboard, nil)
}

// playerName returns --name, falling back to the login name.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	return os.Getenv("USER")
}

func tuiOptions(store *storage.Store) tui.Options {
	return tui.Options{
		Store:       store,
		Leaderboard: leaderboardClient(),
		Player:      playerName(),
	}
}
