package ghost

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

// maxAttempts bounds the alternative headings tried when the chosen cell is taken.
const maxAttempts = 4

// Brain moves ghosts across a maze. Random choices come from RNG so a seeded
// source replays the same paths.
type Brain struct {
	Maze *maze.Maze
	RNG  *rand.Rand
}

// NewBrain creates a Brain.
func NewBrain(m *maze.Maze, rng *rand.Rand) *Brain {
	return &Brain{Maze: m, RNG: rng}
}

// InitialHeading picks a random valid direction out of p. It returns DirNone
// when p is boxed in.
func (b *Brain) InitialHeading(p maze.Position) maze.Direction {
	exits := b.Maze.Exits(p, maze.DirNone)
	if len(exits) == 0 {
		return maze.DirNone
	}
	return exits[b.RNG.Intn(len(exits))]
}

// MoveAll runs one ghost-movement phase. Ghosts are processed in slice order;
// a ghost may not enter a cell held by a ghost processed earlier this phase.
// Ghosts whose speed has not elapsed keep their cell but still count as occupying it.
// It returns the number of ghosts that moved.
func (b *Brain) MoveAll(ghosts []Ghost, player maze.Position, now time.Duration) int {
	occupied := make(map[maze.Position]bool, len(ghosts))
	moved := 0
	for i := range ghosts {
		g := &ghosts[i]
		if g.Due(now) && b.Step(g, player, now, occupied) {
			moved++
		}
		occupied[g.Pos] = true
	}
	return moved
}

// Step advances a single due ghost: sight and lock-on, heading choice, then
// collision avoidance against occupied. It reports whether the ghost moved.
// A ghost that cannot move keeps its heading and retries on the next call.
func (b *Brain) Step(g *Ghost, player maze.Position, now time.Duration, occupied map[maze.Position]bool) bool {
	g.Acquire(b.Maze, player)

	options := b.options(g)
	if len(options) == 0 {
		return false
	}
	dir := b.heading(g, player, options)

	tried := make(map[maze.Direction]bool, len(options))
	for attempt := 0; attempt <= maxAttempts; attempt++ {
		next := b.Maze.Move(g.Pos, dir)
		if !occupied[next] {
			g.Pos = next
			g.Dir = dir
			g.LastMoved = now
			return true
		}
		tried[dir] = true

		rest := make([]maze.Direction, 0, len(options))
		for _, d := range options {
			if !tried[d] {
				rest = append(rest, d)
			}
		}
		if len(rest) == 0 {
			break
		}
		dir = b.pick(g, player, rest)
	}
	return false
}

// options lists the valid non-reversing exits. A dead end falls back to
// turning around; a ghost without a heading may take any exit.
func (b *Brain) options(g *Ghost) []maze.Direction {
	if g.Dir == maze.DirNone {
		return b.Maze.Exits(g.Pos, maze.DirNone)
	}
	opts := b.Maze.Exits(g.Pos, g.Dir)
	if len(opts) > 0 {
		return opts
	}
	back := g.Dir.Opposite()
	if b.Maze.IsValidPosition(b.Maze.Move(g.Pos, back)) {
		return []maze.Direction{back}
	}
	return nil
}

// heading keeps going straight down a corridor and re-decides at a blocked
// cell or a junction.
func (b *Brain) heading(g *Ghost, player maze.Position, options []maze.Direction) maze.Direction {
	if g.Dir != maze.DirNone && len(options) == 1 && options[0] == g.Dir {
		return g.Dir
	}
	return b.pick(g, player, options)
}

// pick chooses among options: closest bearing when locked on, uniform otherwise.
func (b *Brain) pick(g *Ghost, player maze.Position, options []maze.Direction) maze.Direction {
	if g.LockOn {
		return Toward(g.Pos, player, options)
	}
	return options[b.RNG.Intn(len(options))]
}

// Toward returns the option whose heading angle is closest to the bearing from
// from to target. Ties go to the earlier option.
func Toward(from, target maze.Position, options []maze.Direction) maze.Direction {
	bearing := Bearing(from, target)
	best := maze.DirNone
	bestDiff := math.Inf(1)
	for _, d := range options {
		diff := math.Abs(AngleDiff(d.Angle(), bearing))
		if diff < bestDiff {
			best, bestDiff = d, diff
		}
	}
	return best
}

// Bearing is the angle in degrees from one position to another, with y growing
// downward so that Down is +90.
func Bearing(from, to maze.Position) float64 {
	return math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X)) * 180 / math.Pi
}

// AngleDiff returns a-b wrapped to [-180, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	switch {
	case d > 180:
		d -= 360
	case d < -180:
		d += 360
	}
	return d
}
