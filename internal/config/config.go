// Package config provides YAML-based difficulty profiles for the chase game.
package config

// ChaseConfig contains every difficulty profile plus the default selection.
type ChaseConfig struct {
	Default  string         `yaml:"default"`
	Board    BoardConfig    `yaml:"board"`
	Timing   TimingConfig   `yaml:"timing"`
	Profiles []ProfileEntry `yaml:"profiles"`
}

// BoardConfig places the player at session start.
type BoardConfig struct {
	PlayerStart Point `yaml:"player_start"`
}

// TimingConfig holds the clock intervals shared by every profile.
type TimingConfig struct {
	FastTickMS     int `yaml:"fast_tick_ms"`    // Ghost movement arbitration interval
	InvincibleSecs int `yaml:"invincible_secs"` // Length of the special-pickup window
	BlinkMS        int `yaml:"blink_ms"`        // Locked-on ghost blink period
}

// ProfileEntry is one named difficulty.
type ProfileEntry struct {
	Name         string        `yaml:"name"`
	RegularScore int           `yaml:"regular_score"`
	SpecialScore int           `yaml:"special_score"` // Also awarded for eating a ghost
	Ghosts       []GhostConfig `yaml:"ghosts"`
}

// GhostConfig is the template for one ghost.
type GhostConfig struct {
	Name           string `yaml:"name"`
	Spawn          Point  `yaml:"spawn"`
	SpeedMS        int    `yaml:"speed_ms"`         // Milliseconds per move
	LockOnDuration int    `yaml:"lock_on_duration"` // Seconds of pursuit after a sighting
}

// Point is a grid coordinate in the config file.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}
