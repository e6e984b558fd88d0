// Package pickup tracks the pickups still on the board during a session.
package pickup

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/asciiman/internal/games/chase/maze"
)

// Kind is what, if anything, was collected at a position.
type Kind int

const (
	None Kind = iota
	Regular
	Special
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "regular"
	case Special:
		return "special"
	default:
		return "none"
	}
}

// Tracker holds the remaining regular and special pickups. Entries are only
// ever removed.
type Tracker struct {
	regular map[maze.Position]struct{}
	special map[maze.Position]struct{}
}

// NewTracker builds a tracker from explicit positions.
// A position listed in both sets is a programming error and panics.
func NewTracker(regular, special []maze.Position) *Tracker {
	t := &Tracker{
		regular: make(map[maze.Position]struct{}, len(regular)),
		special: make(map[maze.Position]struct{}, len(special)),
	}
	for _, p := range regular {
		t.regular[p] = struct{}{}
	}
	for _, p := range special {
		if _, dup := t.regular[p]; dup {
			panic(fmt.Sprintf("pickup: %v is both regular and special", p))
		}
		t.special[p] = struct{}{}
	}
	return t
}

// FromMaze seeds a tracker with every pickup in the maze layout.
func FromMaze(m *maze.Maze) *Tracker {
	return NewTracker(m.Pickups())
}

// CollectAt removes and reports the pickup at p. Collecting an empty
// position returns None and changes nothing.
func (t *Tracker) CollectAt(p maze.Position) Kind {
	if _, ok := t.regular[p]; ok {
		delete(t.regular, p)
		return Regular
	}
	if _, ok := t.special[p]; ok {
		delete(t.special, p)
		return Special
	}
	return None
}

// At reports the pickup still present at p without removing it.
func (t *Tracker) At(p maze.Position) Kind {
	if _, ok := t.regular[p]; ok {
		return Regular
	}
	if _, ok := t.special[p]; ok {
		return Special
	}
	return None
}

// IsAllCollected reports whether both sets are empty.
func (t *Tracker) IsAllCollected() bool {
	return len(t.regular) == 0 && len(t.special) == 0
}

// Remaining returns the counts of regular and special pickups left.
func (t *Tracker) Remaining() (regular, special int) {
	return len(t.regular), len(t.special)
}

// Regular returns the remaining regular pickups in row-major order.
func (t *Tracker) Regular() []maze.Position {
	return sorted(t.regular)
}

// Special returns the remaining special pickups in row-major order.
func (t *Tracker) Special() []maze.Position {
	return sorted(t.special)
}

// Clone returns an independent copy.
func (t *Tracker) Clone() *Tracker {
	return NewTracker(t.Regular(), t.Special())
}

func sorted(set map[maze.Position]struct{}) []maze.Position {
	out := make([]maze.Position, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
