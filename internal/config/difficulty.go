package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownDifficulty is returned when a profile name is not configured.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// DifficultyPreset names a difficulty profile.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyInsane DifficultyPreset = "insane"
)

// Presets lists the built-in difficulties in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane}

// IsPreset reports whether name is one of the built-in difficulties, ignoring case.
func IsPreset(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range Presets {
		if string(p) == name {
			return true
		}
	}
	return false
}

// Profile is a resolved, validated difficulty. It is immutable once built.
type Profile struct {
	Name         string
	RegularScore int
	SpecialScore int
	PlayerStart  Point
	Ghosts       []GhostProfile
	FastTick     time.Duration
	Invincible   time.Duration
	Blink        time.Duration
}

// GhostProfile is a ghost template with its timing converted.
type GhostProfile struct {
	Name           string
	Spawn          Point
	Speed          time.Duration
	LockOnDuration int
}

// Names returns the configured profile names in file order.
func (c ChaseConfig) Names() []string {
	out := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, p.Name)
	}
	return out
}

// Profile resolves name to a profile. Matching ignores case and surrounding space.
func (c ChaseConfig) Profile(name string) (Profile, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range c.Profiles {
		if strings.ToLower(p.Name) == want {
			return c.build(p)
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}

// ProfileOrDefault resolves name, falling back to the configured default and
// then to the built-in medium profile. It never fails.
func (c ChaseConfig) ProfileOrDefault(name string) Profile {
	if p, err := c.Profile(name); err == nil {
		return p
	}
	if p, err := c.Profile(c.Default); err == nil {
		return p
	}
	p, err := DefaultChaseConfig().Profile(string(DifficultyMedium))
	if err != nil {
		panic(err)
	}
	return p
}

func (c ChaseConfig) build(e ProfileEntry) (Profile, error) {
	if len(e.Ghosts) == 0 {
		return Profile{}, fmt.Errorf("config: profile %q has no ghosts", e.Name)
	}
	timing := c.Timing
	if timing.FastTickMS <= 0 {
		timing.FastTickMS = 100
	}
	if timing.InvincibleSecs <= 0 {
		timing.InvincibleSecs = 5
	}
	if timing.BlinkMS <= 0 {
		timing.BlinkMS = 300
	}

	p := Profile{
		Name:         strings.ToLower(e.Name),
		RegularScore: e.RegularScore,
		SpecialScore: e.SpecialScore,
		PlayerStart:  c.Board.PlayerStart,
		Ghosts:       make([]GhostProfile, len(e.Ghosts)),
		FastTick:     time.Duration(timing.FastTickMS) * time.Millisecond,
		Invincible:   time.Duration(timing.InvincibleSecs) * time.Second,
		Blink:        time.Duration(timing.BlinkMS) * time.Millisecond,
	}
	for i, g := range e.Ghosts {
		if g.SpeedMS <= 0 {
			return Profile{}, fmt.Errorf("config: profile %q ghost %q has non-positive speed", e.Name, g.Name)
		}
		p.Ghosts[i] = GhostProfile{
			Name:           g.Name,
			Spawn:          g.Spawn,
			Speed:          time.Duration(g.SpeedMS) * time.Millisecond,
			LockOnDuration: g.LockOnDuration,
		}
	}
	return p, nil
}
