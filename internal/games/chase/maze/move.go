package maze

// Move returns the position one step from p in direction d. On the tunnel row,
// stepping left from column 0 lands on the last column and stepping right from
// the last column lands on column 0. Nothing else wraps. The result is not
// validated; callers check IsValidPosition before committing.
func (m *Maze) Move(p Position, d Direction) Position {
	if p.Y == m.tunnelRow {
		switch {
		case d == DirLeft && p.X == 0:
			return Position{X: m.width - 1, Y: p.Y}
		case d == DirRight && p.X == m.width-1:
			return Position{X: 0, Y: p.Y}
		}
	}
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// IsValidPosition reports whether an actor may stand on p.
func (m *Maze) IsValidPosition(p Position) bool {
	return m.IsWalkable(p)
}

// Exits returns the directions from p whose target is valid, in enumeration order.
// The reverse of exclude is left out; pass DirNone to keep all four.
func (m *Maze) Exits(p Position, exclude Direction) []Direction {
	reverse := exclude.Opposite()
	exits := make([]Direction, 0, 4)
	for _, d := range Directions {
		if reverse != DirNone && d == reverse {
			continue
		}
		if m.IsValidPosition(m.Move(p, d)) {
			exits = append(exits, d)
		}
	}
	return exits
}
