// Package ghost implements the pursuers: line-of-sight target acquisition,
// lock-on persistence, junction heading choice and collision avoidance.
package ghost

import (
	"time"

	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

// Ghost is one pursuer. Name is an opaque identity used by the renderer.
type Ghost struct {
	Name           string
	Pos            maze.Position
	Spawn          maze.Position
	Dir            maze.Direction
	LockOn         bool
	LockOnTimer    int // seconds left
	LockOnDuration int // seconds
	Speed          time.Duration
	LastMoved      time.Duration
}

// Spec is the immutable template a ghost is created from.
type Spec struct {
	Name           string
	Spawn          maze.Position
	Speed          time.Duration
	LockOnDuration int
}

// New creates a ghost at its spawn point with no heading.
func New(s Spec) Ghost {
	return Ghost{
		Name:           s.Name,
		Pos:            s.Spawn,
		Spawn:          s.Spawn,
		LockOnDuration: s.LockOnDuration,
		Speed:          s.Speed,
	}
}

// Due reports whether the ghost's own speed allows a move at now.
func (g *Ghost) Due(now time.Duration) bool {
	return now-g.LastMoved >= g.Speed
}

// Decay runs the once-per-second lock-on countdown.
func (g *Ghost) Decay() {
	if g.LockOnTimer <= 0 {
		return
	}
	g.LockOnTimer--
	if g.LockOnTimer == 0 {
		g.LockOn = false
	}
}

// Respawn sends an eaten ghost home and clears its pursuit state.
// LastMoved is set to now so it does not move again in the same tick.
func (g *Ghost) Respawn(now time.Duration) {
	g.Pos = g.Spawn
	g.Dir = maze.DirNone
	g.LockOn = false
	g.LockOnTimer = 0
	g.LastMoved = now
}

// Acquire refreshes lock-on when the player is visible along a straight line.
// It returns the sighting direction, or DirNone.
func (g *Ghost) Acquire(m *maze.Maze, player maze.Position) maze.Direction {
	dir := Sight(m, g.Pos, player)
	if dir != maze.DirNone {
		g.LockOn = true
		g.Dir = dir
		g.LockOnTimer = g.LockOnDuration
	}
	return dir
}

// Sight walks a ray in each direction, in enumeration order, and returns the
// first direction along which player is reached before a wall. Rays follow the
// tunnel wrap. A ray that wraps back to its origin stops.
func Sight(m *maze.Maze, from, player maze.Position) maze.Direction {
	for _, d := range maze.Directions {
		p := from
		for {
			p = m.Move(p, d)
			if p == from || !m.IsValidPosition(p) {
				break
			}
			if p == player {
				return d
			}
		}
	}
	return maze.DirNone
}
