package config

import (
	_ "embed"
)

//go:embed defaults/chase.yaml
var defaultChaseYAML []byte

// DefaultChaseConfig returns the built-in profiles, used when no YAML can be read.
func DefaultChaseConfig() ChaseConfig {
	spawns := []Point{{13, 13}, {14, 13}, {13, 14}, {14, 14}}
	names := []string{"blinky", "pinky", "inky", "clyde"}
	ghosts := func(speeds, lockOn [4]int) []GhostConfig {
		out := make([]GhostConfig, len(names))
		for i := range names {
			out[i] = GhostConfig{
				Name:           names[i],
				Spawn:          spawns[i],
				SpeedMS:        speeds[i],
				LockOnDuration: lockOn[i],
			}
		}
		return out
	}

	return ChaseConfig{
		Default: string(DifficultyMedium),
		Board: BoardConfig{
			PlayerStart: Point{X: 14, Y: 23},
		},
		Timing: TimingConfig{
			FastTickMS:     100,
			InvincibleSecs: 5,
			BlinkMS:        300,
		},
		Profiles: []ProfileEntry{
			{
				Name:         string(DifficultyEasy),
				RegularScore: 10,
				SpecialScore: 50,
				Ghosts:       ghosts([4]int{400, 450, 500, 500}, [4]int{5, 5, 3, 3}),
			},
			{
				Name:         string(DifficultyMedium),
				RegularScore: 10,
				SpecialScore: 60,
				Ghosts:       ghosts([4]int{300, 350, 400, 400}, [4]int{10, 10, 6, 6}),
			},
			{
				Name:         string(DifficultyHard),
				RegularScore: 15,
				SpecialScore: 75,
				Ghosts:       ghosts([4]int{220, 250, 300, 300}, [4]int{20, 20, 10, 10}),
			},
			{
				Name:         string(DifficultyInsane),
				RegularScore: 20,
				SpecialScore: 100,
				Ghosts:       ghosts([4]int{180, 200, 250, 250}, [4]int{30, 30, 20, 20}),
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "chase":
		return defaultChaseYAML
	default:
		return nil
	}
}
